package sqlite

import "github.com/nonibytes/setlogic/setlogic/storage"

const ddlBase = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sets (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL UNIQUE,
	expression TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS set_members (
	set_id INTEGER NOT NULL REFERENCES sets(id) ON DELETE CASCADE,
	member TEXT NOT NULL,
	PRIMARY KEY (set_id, member)
) WITHOUT ROWID;
`

var SQLTemplates = storage.SQL{
	GetMeta: "SELECT value FROM meta WHERE key = ?1",
	SetMeta: "INSERT INTO meta(key,value) VALUES(?1,?2) ON CONFLICT(key) DO UPDATE SET value=excluded.value",
	UpsertSet: `INSERT INTO sets(name, expression, created_at, updated_at)
		VALUES(?1, ?2, ?3, ?3)
		ON CONFLICT(name) DO UPDATE SET expression=excluded.expression, updated_at=excluded.updated_at
		RETURNING id`,
	GetSetID: "SELECT id FROM sets WHERE name = ?1",
	GetSetInfo: `SELECT s.expression, s.created_at, s.updated_at,
		(SELECT COUNT(*) FROM set_members m WHERE m.set_id = s.id)
		FROM sets s WHERE s.name = ?1`,
	DeleteMembers: "DELETE FROM set_members WHERE set_id = ?1",
	InsertMember:  "INSERT OR IGNORE INTO set_members(set_id, member) VALUES(?1, ?2)",
	ListMembers:   "SELECT m.member FROM set_members m JOIN sets s ON s.id = m.set_id WHERE s.name = ?1",
	DeleteSet:     "DELETE FROM sets WHERE name = ?1",
	ListSets: `SELECT s.name, s.expression, s.created_at, s.updated_at,
		(SELECT COUNT(*) FROM set_members m WHERE m.set_id = s.id)
		FROM sets s ORDER BY s.name`,
}
