package ast

// Identifiers into the AST arenas. Every ID is 1-based; zero is the "not
// present" sentinel so a zeroed struct never aliases a real node.
type (
	FileID    uint32
	ImportID  uint32
	ItemID    uint32
	StmtID    uint32
	ExprID    uint32
	TypeID    uint32
	FieldID   uint32
	ParamID   uint32
	AttrID    uint32
	CaseID    uint32
	GenericID uint32
	PayloadID uint32
)

const (
	NoFileID    FileID    = 0
	NoImportID  ImportID  = 0
	NoItemID    ItemID    = 0
	NoStmtID    StmtID    = 0
	NoExprID    ExprID    = 0
	NoTypeID    TypeID    = 0
	NoFieldID   FieldID   = 0
	NoParamID   ParamID   = 0
	NoAttrID    AttrID    = 0
	NoCaseID    CaseID    = 0
	NoGenericID GenericID = 0
	NoPayloadID PayloadID = 0
)

func (id FileID) IsValid() bool    { return id != NoFileID }
func (id ImportID) IsValid() bool  { return id != NoImportID }
func (id ItemID) IsValid() bool    { return id != NoItemID }
func (id StmtID) IsValid() bool    { return id != NoStmtID }
func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id TypeID) IsValid() bool    { return id != NoTypeID }
func (id FieldID) IsValid() bool   { return id != NoFieldID }
func (id ParamID) IsValid() bool   { return id != NoParamID }
func (id AttrID) IsValid() bool    { return id != NoAttrID }
func (id CaseID) IsValid() bool    { return id != NoCaseID }
func (id GenericID) IsValid() bool { return id != NoGenericID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
