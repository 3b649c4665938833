// ABOUTME: Column list and row scanning shared by the postgres and mysql stores
// ABOUTME: Both backends order programs by an auto-increment sequence column

package registry

const programColumns = "id, owner, program_hash, framework, metadata_uri, registered_at, analysis_count, latest_score, is_verified"

// rowScanner is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgram(row rowScanner) (Program, error) {
	var p Program
	err := row.Scan(&p.ID, &p.Owner, &p.ProgramHash, &p.Framework, &p.MetadataURI,
		&p.RegisteredAt, &p.AnalysisCount, &p.LatestScore, &p.IsVerified)
	if err != nil {
		return Program{}, err
	}
	p.RegisteredAt = p.RegisteredAt.UTC()
	return p, nil
}

func scanStats(row rowScanner) (Stats, error) {
	var s Stats
	if err := row.Scan(&s.TotalPrograms, &s.TotalAnalyses, &s.VerifiedCount, &s.AverageScore); err != nil {
		return Stats{}, err
	}
	s.AverageScore = roundScore(s.AverageScore)
	return s, nil
}
