package gamelog

// KeySet accumulates the dedup keys already present in one category's store.
// It is loaded once per run and extended after every applied file.
type KeySet struct {
	keys map[string]struct{}
}

func NewKeySet(keys ...string) *KeySet {
	s := &KeySet{keys: make(map[string]struct{}, len(keys))}
	s.Add(keys...)
	return s
}

func (s *KeySet) Has(key string) bool {
	_, ok := s.keys[key]
	return ok
}

func (s *KeySet) Add(keys ...string) {
	for _, k := range keys {
		s.keys[k] = struct{}{}
	}
}

// AddRecords records the keys of applied records.
func (s *KeySet) AddRecords(records []Record) {
	for _, r := range records {
		s.keys[r.Key()] = struct{}{}
	}
}

func (s *KeySet) Len() int {
	return len(s.keys)
}

// Partition splits records into unseen ones and a count of duplicates. Within
// records the first occurrence of a key wins. The set itself is not modified.
func (s *KeySet) Partition(records []Record) ([]Record, int) {
	fresh := make([]Record, 0, len(records))
	inFile := make(map[string]struct{})
	duplicates := 0
	for _, r := range records {
		key := r.Key()
		if s.Has(key) {
			duplicates++
			continue
		}
		if _, dup := inFile[key]; dup {
			duplicates++
			continue
		}
		inFile[key] = struct{}{}
		fresh = append(fresh, r)
	}
	return fresh, duplicates
}
