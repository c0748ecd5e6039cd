package ledger

type AppendInput struct {
	UniqueDataID string
	Actor        string
	EventType    string
	// Marshalled to JSON; nil stores no metadata
	Metadata any
}

type ListInput struct {
	AfterID uint64
	Limit   int
}

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)
