package wire

// FieldID identifies a single TLV entry within a parameter block. Known ids
// are named constants; anything else round-trips through Other.
type FieldID struct {
	known bool
	name  knownField
	other uint16
}

type knownField uint16

// Named field ids from the protocol's field table.
const (
	fieldData             knownField = 101
	fieldLogin            knownField = 105
	fieldPassword         knownField = 106
	fieldFileName         knownField = 200
	fieldVersion          knownField = 160
	fieldBannerID         knownField = 161
	fieldServerName       knownField = 162
	fieldNewsArticle      knownField = 321
	fieldNewsCategory     knownField = 323
	fieldNewsPath         knownField = 325
	fieldNewsArticleID    knownField = 326
	fieldNewsDataFlavor   knownField = 327
	fieldNewsTitle        knownField = 328
	fieldNewsPoster       knownField = 329
	fieldNewsDate         knownField = 330
	fieldNewsPrevID       knownField = 331
	fieldNewsNextID       knownField = 332
	fieldNewsArticleData  knownField = 333
	fieldNewsArticleFlags knownField = 334
	fieldNewsParentID     knownField = 335
	fieldNewsFirstChildID knownField = 336
)

// Exported FieldID values for known ids.
var (
	FieldData             = FieldID{known: true, name: fieldData}
	FieldLogin            = FieldID{known: true, name: fieldLogin}
	FieldPassword         = FieldID{known: true, name: fieldPassword}
	FieldFileName         = FieldID{known: true, name: fieldFileName}
	FieldVersion          = FieldID{known: true, name: fieldVersion}
	FieldBannerID         = FieldID{known: true, name: fieldBannerID}
	FieldServerName       = FieldID{known: true, name: fieldServerName}
	FieldNewsArticle      = FieldID{known: true, name: fieldNewsArticle}
	FieldNewsCategory     = FieldID{known: true, name: fieldNewsCategory}
	FieldNewsPath         = FieldID{known: true, name: fieldNewsPath}
	FieldNewsArticleID    = FieldID{known: true, name: fieldNewsArticleID}
	FieldNewsDataFlavor   = FieldID{known: true, name: fieldNewsDataFlavor}
	FieldNewsTitle        = FieldID{known: true, name: fieldNewsTitle}
	FieldNewsPoster       = FieldID{known: true, name: fieldNewsPoster}
	FieldNewsDate         = FieldID{known: true, name: fieldNewsDate}
	FieldNewsPrevID       = FieldID{known: true, name: fieldNewsPrevID}
	FieldNewsNextID       = FieldID{known: true, name: fieldNewsNextID}
	FieldNewsArticleData  = FieldID{known: true, name: fieldNewsArticleData}
	FieldNewsArticleFlags = FieldID{known: true, name: fieldNewsArticleFlags}
	FieldNewsParentID     = FieldID{known: true, name: fieldNewsParentID}
	FieldNewsFirstChildID = FieldID{known: true, name: fieldNewsFirstChildID}
)

// OtherField returns the catch-all FieldID for an id with no named constant.
func OtherField(id uint16) FieldID {
	return FieldID{known: false, other: id}
}

// fieldIDFromWire maps a raw wire id to its FieldID, known or Other.
func fieldIDFromWire(id uint16) FieldID {
	switch knownField(id) {
	case fieldData, fieldLogin, fieldPassword, fieldFileName, fieldVersion,
		fieldBannerID, fieldServerName, fieldNewsArticle, fieldNewsCategory,
		fieldNewsPath, fieldNewsArticleID, fieldNewsDataFlavor, fieldNewsTitle,
		fieldNewsPoster, fieldNewsDate, fieldNewsPrevID, fieldNewsNextID,
		fieldNewsArticleData, fieldNewsArticleFlags, fieldNewsParentID,
		fieldNewsFirstChildID:
		return FieldID{known: true, name: knownField(id)}
	default:
		return FieldID{known: false, other: id}
	}
}

// Wire returns the raw u16 id this FieldID round-trips to.
func (f FieldID) Wire() uint16 {
	if f.known {
		return uint16(f.name)
	}
	return f.other
}

// IsListValued reports whether this field id may legally repeat within a
// single parameter block (NewsCategory, NewsArticle, FileName).
func (f FieldID) IsListValued() bool {
	return f.known && (f.name == fieldNewsCategory || f.name == fieldNewsArticle || f.name == fieldFileName)
}

// IsText reports whether this field carries a text payload subject to the
// XOR compatibility shim (§4.6).
func (f FieldID) IsText() bool {
	if !f.known {
		return false
	}
	switch f.name {
	case fieldLogin, fieldPassword, fieldData, fieldNewsCategory,
		fieldNewsArticle, fieldNewsPath, fieldNewsTitle, fieldNewsPoster,
		fieldNewsDataFlavor, fieldNewsArticleData, fieldFileName:
		return true
	default:
		return false
	}
}
