package store

func (s *Store) SetSchemaVersionForTest(version int) error {
	_, err := s.db.Exec("UPDATE schema_version SET version = ?", version)
	return err
}
