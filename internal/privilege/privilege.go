// Package privilege defines the MXD account privilege bitmap shared by the
// session state machine and the transaction routing table.
package privilege

// Privileges is a 64-bit capability bitmap attached to an authenticated
// session. Bit positions 0-37 are named below; higher bits are reserved.
type Privileges uint64

// Named privilege bits, positions 0-37 per the wire protocol's account
// privilege table. Grouped by the area of the protocol they gate.
const (
	DownloadFile Privileges = 1 << iota
	UploadFile
	UploadAnywhere
	DeleteFile
	RenameFile
	MoveFile
	CreateFolder
	DeleteFolder
	RenameFolder
	MoveFolder

	ReadChat
	SendChat
	OpenChat
	CloseChat

	ShowInList
	SendPrivateMessage
	BroadcastMessage

	NewsReadArticle
	NewsPostArticle
	NewsDeleteArticle
	NewsCreateCategory
	NewsDeleteCategory
	NewsCreateBundle
	NewsDeleteBundle

	CreateUser
	DeleteUser
	OpenUser
	ModifyUser
	ChangeOwnPassword

	DisconnectUser
	CannotBeDiscon
	GetClientInfo

	UploadFolder
	DownloadFolder

	SetFileComment
	SetFolderComment
	ViewDropBoxes
	MakeAlias
)

// DefaultUser is the privilege set granted to a standard registered account
// with no administrative capabilities.
const DefaultUser = DownloadFile | ReadChat | SendChat | ShowInList |
	SendPrivateMessage | NewsReadArticle | NewsPostArticle | GetClientInfo |
	ChangeOwnPassword

// Admin grants every named privilege bit.
const Admin = DefaultUser | UploadFile | UploadAnywhere | DeleteFile |
	RenameFile | MoveFile | CreateFolder | DeleteFolder | RenameFolder |
	MoveFolder | OpenChat | CloseChat | BroadcastMessage | NewsDeleteArticle |
	NewsCreateCategory | NewsDeleteCategory | NewsCreateBundle |
	NewsDeleteBundle | CreateUser | DeleteUser | OpenUser | ModifyUser |
	DisconnectUser | CannotBeDiscon | UploadFolder | DownloadFolder |
	SetFileComment | SetFolderComment | ViewDropBoxes | MakeAlias

// Has reports whether all bits of required are set in p.
func (p Privileges) Has(required Privileges) bool {
	return p&required == required
}

// Union returns the bitwise union of p and other.
func (p Privileges) Union(other Privileges) Privileges {
	return p | other
}
