package fleet

// Collection names shared between the engine's write intents and the
// persistence layer.
const (
	CollVehicles    = "vehicles"
	CollDrivers     = "drivers"
	CollTrips       = "trips"
	CollMaintenance = "maintenance_logs"
	CollExpenses    = "expenses"
)

// ChangeOp is the kind of write a transition produced.
type ChangeOp string

const (
	OpCreate ChangeOp = "create"
	OpUpdate ChangeOp = "update"
	OpDelete ChangeOp = "delete"
)

// Change is a single write intent: one document to create, update or
// delete in one collection. Doc carries the full post-transition document
// for create/update and is nil for delete.
type Change struct {
	Collection string
	Op         ChangeOp
	ID         string
	Doc        interface{}
}

// Result is the outcome of a successful transition: the next snapshot and
// the write intents that turn the previous durable state into it. An
// empty Changes slice means the operation was a no-op.
type Result struct {
	Snapshot Snapshot
	Changes  []Change
}

func created(coll, id string, doc interface{}) Change {
	return Change{Collection: coll, Op: OpCreate, ID: id, Doc: doc}
}

func updated(coll, id string, doc interface{}) Change {
	return Change{Collection: coll, Op: OpUpdate, ID: id, Doc: doc}
}

func deleted(coll, id string) Change {
	return Change{Collection: coll, Op: OpDelete, ID: id}
}
