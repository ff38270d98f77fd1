package wire

import "github.com/mxdserver/mxd/internal/privilege"

// TransactionType identifies the command carried by a transaction's header
// Type field. Known types are named; anything else round-trips through
// OtherTransaction.
type TransactionType struct {
	known bool
	name  knownTxn
	other uint16
}

type knownTxn uint16

const (
	txnError                knownTxn = 100
	txnLogin                knownTxn = 107
	txnAgreement            knownTxn = 109
	txnAgreed               knownTxn = 121
	txnGetFileNameList      knownTxn = 200
	txnDownloadBanner       knownTxn = 212
	txnGetUserNameList      knownTxn = 300
	txnNewsCategoryNameList knownTxn = 370
	txnNewsArticleNameList  knownTxn = 371
	txnNewsArticleData      knownTxn = 400
	txnPostNewsArticle      knownTxn = 410
	txnUserAccess           knownTxn = 354
)

// Exported TransactionType values for known types.
var (
	TxnError                = TransactionType{known: true, name: txnError}
	TxnLogin                = TransactionType{known: true, name: txnLogin}
	TxnAgreement            = TransactionType{known: true, name: txnAgreement}
	TxnAgreed               = TransactionType{known: true, name: txnAgreed}
	TxnGetFileNameList      = TransactionType{known: true, name: txnGetFileNameList}
	TxnDownloadBanner       = TransactionType{known: true, name: txnDownloadBanner}
	TxnGetUserNameList      = TransactionType{known: true, name: txnGetUserNameList}
	TxnNewsCategoryNameList = TransactionType{known: true, name: txnNewsCategoryNameList}
	TxnNewsArticleNameList  = TransactionType{known: true, name: txnNewsArticleNameList}
	TxnNewsArticleData      = TransactionType{known: true, name: txnNewsArticleData}
	TxnPostNewsArticle      = TransactionType{known: true, name: txnPostNewsArticle}
	TxnUserAccess           = TransactionType{known: true, name: txnUserAccess}
)

// OtherTransaction returns the catch-all TransactionType for an id with no
// named constant.
func OtherTransaction(id uint16) TransactionType {
	return TransactionType{known: false, other: id}
}

// TransactionTypeFromWire maps a raw wire type id to its TransactionType,
// known or Other.
func TransactionTypeFromWire(id uint16) TransactionType {
	switch knownTxn(id) {
	case txnError, txnLogin, txnAgreement, txnAgreed, txnGetFileNameList,
		txnDownloadBanner, txnGetUserNameList, txnNewsCategoryNameList,
		txnNewsArticleNameList, txnNewsArticleData, txnPostNewsArticle,
		txnUserAccess:
		return TransactionType{known: true, name: knownTxn(id)}
	default:
		return TransactionType{known: false, other: id}
	}
}

// Wire returns the raw u16 id this TransactionType round-trips to.
func (t TransactionType) Wire() uint16 {
	if t.known {
		return uint16(t.name)
	}
	return t.other
}

// AllowsPayload reports whether a request of this type may carry a
// non-empty payload. GetFileNameList, DownloadBanner, and
// GetUserNameList take no parameters and forbid one.
func (t TransactionType) AllowsPayload() bool {
	if !t.known {
		return true
	}
	switch t.name {
	case txnGetFileNameList, txnDownloadBanner, txnGetUserNameList:
		return false
	default:
		return true
	}
}

// RequiresAuthentication reports whether the session must already be
// authenticated before this transaction type may be dispatched.
func (t TransactionType) RequiresAuthentication() bool {
	if !t.known {
		return true
	}
	switch t.name {
	case txnLogin, txnAgreement, txnAgreed:
		return false
	default:
		return true
	}
}

// RequiredPrivilege returns the privilege bit the session must hold for
// this transaction type, or zero if none is required beyond authentication.
func (t TransactionType) RequiredPrivilege() privilege.Privileges {
	if !t.known {
		return 0
	}
	switch t.name {
	case txnGetFileNameList:
		return privilege.DownloadFile
	case txnNewsCategoryNameList, txnNewsArticleNameList, txnNewsArticleData:
		return privilege.NewsReadArticle
	case txnPostNewsArticle:
		return privilege.NewsPostArticle
	default:
		return 0
	}
}
