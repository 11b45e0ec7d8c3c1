package journal

// createEvents is the only table in the journal.
const createEvents = `CREATE TABLE IF NOT EXISTS events (
    event_id TEXT PRIMARY KEY,
    seq INTEGER NOT NULL UNIQUE,
    kind TEXT NOT NULL,
    structure TEXT NOT NULL,
    subject TEXT NOT NULL,
    detail TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

// indexDDL speeds up the per-kind and per-structure summaries.
var indexDDL = []string{
	`CREATE INDEX IF NOT EXISTS idx_events_kind ON events(kind);`,
	`CREATE INDEX IF NOT EXISTS idx_events_structure ON events(structure);`,
}
