package sqlstore

// Placeholders are "?" so the same text runs on MySQL and SQLite.
// Timestamps are unix milliseconds.

const insertAccountSQL = `
INSERT INTO accounts (id, email, password_hash, name, is_admin, created_at)
VALUES (?, ?, ?, ?, 0, ?)
`

const selectAccountCols = `SELECT id, email, password_hash, name, is_admin, created_at FROM accounts`

const accountByEmailSQL = selectAccountCols + ` WHERE email = ?`

const accountByIDSQL = selectAccountCols + ` WHERE id = ?`

const setAdminSQL = `UPDATE accounts SET is_admin = ? WHERE id = ?`

const listAdminsSQL = `
SELECT id, name, email
FROM accounts
WHERE is_admin = 1
ORDER BY name, email
`

// -----------------------------------------------------------------------------
// JOURNEYS
// -----------------------------------------------------------------------------

const insertJourneySQL = `
INSERT INTO journey_requests
  (id, user_id, travel_style, destination, budget, duration, preferences, status, assigned_to, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, 'pending', NULL, ?)
`

// Owner and assignee are LEFT JOINed so a dangling reference never hides a row.
const selectJourneyViewCols = `
SELECT
  j.id, j.user_id, j.travel_style, j.destination, j.budget, j.duration, j.preferences,
  j.status, j.assigned_to, j.created_at,
  u.name, u.email,
  a.id, a.name, a.email
FROM journey_requests j
LEFT JOIN accounts u ON u.id = j.user_id
LEFT JOIN accounts a ON a.id = j.assigned_to
`

const listJourneysSQL = selectJourneyViewCols + `ORDER BY j.created_at DESC, j.id DESC`

const getJourneySQL = selectJourneyViewCols + `WHERE j.id = ?`

const journeyExistsSQL = `SELECT 1 FROM journey_requests WHERE id = ?`

const setJourneyStatusSQL = `UPDATE journey_requests SET status = ? WHERE id = ?`

const assignJourneySQL = `UPDATE journey_requests SET assigned_to = ? WHERE id = ?`

const deleteJourneySQL = `DELETE FROM journey_requests WHERE id = ?`

// -----------------------------------------------------------------------------
// NOTES
// -----------------------------------------------------------------------------

const insertNoteSQL = `
INSERT INTO journey_notes (id, journey_id, admin_id, content, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
`

const selectNoteCols = `
SELECT n.id, n.journey_id, n.admin_id, u.name, n.content, n.created_at, n.updated_at
FROM journey_notes n
LEFT JOIN accounts u ON u.id = n.admin_id
`

const listNotesSQL = selectNoteCols + `WHERE n.journey_id = ? ORDER BY n.created_at DESC, n.id DESC`

const getNoteSQL = selectNoteCols + `WHERE n.id = ? AND n.journey_id = ?`

const updateNoteSQL = `UPDATE journey_notes SET content = ?, updated_at = ? WHERE id = ? AND journey_id = ?`

const deleteNoteSQL = `DELETE FROM journey_notes WHERE id = ? AND journey_id = ?`

// -----------------------------------------------------------------------------
// FILES
// -----------------------------------------------------------------------------

const insertFileSQL = `
INSERT INTO journey_files (id, journey_id, admin_id, filename, filepath, file_type, file_size, uploaded_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

const selectFileCols = `
SELECT f.id, f.journey_id, f.admin_id, u.name, f.filename, f.filepath, f.file_type, f.file_size, f.uploaded_at
FROM journey_files f
LEFT JOIN accounts u ON u.id = f.admin_id
`

const listFilesSQL = selectFileCols + `WHERE f.journey_id = ? ORDER BY f.uploaded_at DESC, f.id DESC`

const getFileSQL = selectFileCols + `WHERE f.id = ? AND f.journey_id = ?`

const deleteFileSQL = `DELETE FROM journey_files WHERE id = ? AND journey_id = ?`
