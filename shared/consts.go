package shared

const (
	OwnerReadWrite     = 0600
	OwnerReadWriteExec = 0700
)
