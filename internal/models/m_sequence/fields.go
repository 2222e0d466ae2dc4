package m_sequence

// Field name constants for the tbl_sequence table.
const (
	TableName = "tbl_sequence"

	SeqName = "seq_name"
	LastID  = "last_id"
)
