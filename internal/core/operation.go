package core

// OperationKind identifies the kind of logical change a plan operation makes.
type OperationKind string

const (
	OpDropTable    OperationKind = "DROP_TABLE"
	OpCreateTable  OperationKind = "CREATE_TABLE"
	OpAddColumn    OperationKind = "ADD_COLUMN"
	OpDropColumn   OperationKind = "DROP_COLUMN"
	OpModifyColumn OperationKind = "MODIFY_COLUMN"
	OpSyncData     OperationKind = "SYNC_DATA"
)

// Operation is one logical change in a sync plan. Column operations carry the
// source-side column definition; CreateTable carries the verbatim CREATE
// statement captured at extraction time so that engine, charset, and partition
// options survive exactly.
type Operation struct {
	Kind  OperationKind `json:"kind"`
	Table string        `json:"table"`

	// Column is set for AddColumn and ModifyColumn; for DropColumn only
	// its Name is meaningful.
	Column *Column `json:"column,omitempty"`

	// CreateSQL is the verbatim CREATE TABLE text, set for CreateTable.
	CreateSQL string `json:"createSql,omitempty"`

	// Rows is the source-side row estimate, set for SyncData (display only).
	Rows int64 `json:"rows,omitempty"`

	// InsertColumns is the ordered column list for the SyncData insert
	// header, set for SyncData.
	InsertColumns []string `json:"insertColumns,omitempty"`
}
