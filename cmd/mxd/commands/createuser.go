package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mxdserver/mxd/internal/authn"
	"github.com/mxdserver/mxd/internal/cliout"
	"github.com/mxdserver/mxd/internal/cliprompt"
	"github.com/mxdserver/mxd/internal/config"
	"github.com/mxdserver/mxd/internal/privilege"
	"github.com/mxdserver/mxd/internal/store"
)

var (
	createUserAdmin    bool
	createUserPassword string
)

var createUserCmd = &cobra.Command{
	Use:   "create-user <username>",
	Short: "Create a new account",
	Long: `Create a new account in the configured store.

With no --password flag, the password is read interactively (masked,
with confirmation). Use --admin to grant every privilege bit instead of
the standard account set.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreateUser,
}

var listUsersCmd = &cobra.Command{
	Use:   "list-users",
	Short: "List accounts",
	RunE:  runListUsers,
}

func init() {
	createUserCmd.Flags().BoolVar(&createUserAdmin, "admin", false, "grant every privilege bit")
	createUserCmd.Flags().StringVar(&createUserPassword, "password", "", "password (prompted interactively if omitted)")
	rootCmd.AddCommand(listUsersCmd)
}

func runCreateUser(cmd *cobra.Command, args []string) error {
	username := args[0]

	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return err
	}
	if err := InitLogger(cfg); err != nil {
		return err
	}

	password := createUserPassword
	if password == "" {
		password, err = cliprompt.PasswordWithConfirmation(8)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
	}

	hasher := authn.NewHasher(authn.Config{
		MemoryKiB:   cfg.Argon2.MCost,
		Iterations:  cfg.Argon2.TCost,
		Parallelism: cfg.Argon2.PCost,
		SaltLength:  16,
		KeyLength:   32,
	})
	hash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	privileges := privilege.DefaultUser
	if createUserAdmin {
		privileges = privilege.Admin
	}

	st, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	user := &store.User{Username: username, PasswordHash: hash, Privileges: uint64(privileges)}
	if err := st.CreateUser(context.Background(), user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Printf("created user %q (id %d)\n", user.Username, user.ID)
	return nil
}

func runListUsers(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return err
	}
	if err := InitLogger(cfg); err != nil {
		return err
	}

	st, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	users, err := st.ListUsers(context.Background())
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	table := userTable{users: users}
	cliout.PrintTable(os.Stdout, table)
	return nil
}

type userTable struct {
	users []store.User
}

func (t userTable) Headers() []string {
	return []string{"ID", "Username", "Admin", "Created"}
}

func (t userTable) Rows() [][]string {
	rows := make([][]string, 0, len(t.users))
	for _, u := range t.users {
		admin := "no"
		if privilege.Privileges(u.Privileges).Has(privilege.Admin) {
			admin = "yes"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", u.ID),
			u.Username,
			admin,
			u.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return rows
}
