package primaschema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
)

// ManifestEntry is the reduced projection of a Scheme kept in the index:
// notes, citations and checkable content are dropped, deep-linkable file
// URLs are added.
type ManifestEntry struct {
	Name            string           `json:"name"`
	AmpliconSize    int              `json:"amplicon_size"`
	Version         string           `json:"version"`
	Contributors    []Contributor    `json:"contributors"`
	TargetOrganisms []TargetOrganism `json:"target_organisms"`
	License         SchemeLicense    `json:"license"`
	Status          SchemeStatus     `json:"status"`
	Tags            []string         `json:"tags,omitempty"`
	DerivedFrom     string           `json:"derived_from,omitempty"`

	PrimerFileSha256    string `json:"primer_file_sha256,omitempty"`
	ReferenceFileSha256 string `json:"reference_file_sha256,omitempty"`

	PrimerFileURL    string `json:"primer_file_url"`
	ReferenceFileURL string `json:"reference_file_url"`
	InfoFileURL      string `json:"info_file_url"`
}

// RelativePath is the entry's name/ampliconSize/version key as a path.
func (m *ManifestEntry) RelativePath() string {
	return fmt.Sprintf("%s/%d/%s", m.Name, m.AmpliconSize, m.Version)
}

// NewManifestEntry projects a Scheme to its index form. File URLs are joined
// from baseURL, or left relative when baseURL is empty.
func NewManifestEntry(s *Scheme, baseURL string) ManifestEntry {
	m := ManifestEntry{
		Name:                s.Name,
		AmpliconSize:        s.AmpliconSize,
		Version:             s.Version,
		Contributors:        s.Contributors,
		TargetOrganisms:     s.TargetOrganisms,
		License:             s.License,
		Status:              s.Status,
		Tags:                s.Tags,
		DerivedFrom:         s.DerivedFrom,
		PrimerFileSha256:    s.PrimerFileSha256,
		ReferenceFileSha256: s.ReferenceFileSha256,
	}
	if m.License == "" {
		m.License = DefaultLicense
	}

	prefix := m.RelativePath()
	if baseURL != "" {
		prefix = baseURL + "/" + prefix
	}
	m.PrimerFileURL = prefix + "/" + PrimerFileName
	m.ReferenceFileURL = prefix + "/" + ReferenceFileName
	m.InfoFileURL = prefix + "/" + MetadataFileName

	return m
}

// Index is the manifest of all known scheme versions, keyed by
// name -> amplicon size -> version. No empty intermediate level persists.
type Index struct {
	Schemes map[string]map[int]map[string]ManifestEntry `json:"primerschemes"`
}

// NewIndex returns an empty manifest index.
func NewIndex() *Index {
	return &Index{Schemes: map[string]map[int]map[string]ManifestEntry{}}
}

// Add inserts an entry, creating intermediate levels as needed. Under strict
// mode an existing entry with differing file checksums rejects the add and is
// retained; otherwise the incoming entry overwrites.
func (x *Index) Add(m ManifestEntry, strict bool) error {
	if x.Schemes == nil {
		x.Schemes = map[string]map[int]map[string]ManifestEntry{}
	}

	nameLevel, ok := x.Schemes[m.Name]
	if !ok {
		nameLevel = map[int]map[string]ManifestEntry{}
		x.Schemes[m.Name] = nameLevel
	}
	sizeLevel, ok := nameLevel[m.AmpliconSize]
	if !ok {
		sizeLevel = map[string]ManifestEntry{}
		nameLevel[m.AmpliconSize] = sizeLevel
	}

	if existing, ok := sizeLevel[m.Version]; ok && strict {
		if existing.PrimerFileSha256 != m.PrimerFileSha256 {
			return &ManifestConflictError{
				Path:     m.RelativePath(),
				Kind:     "primer_file_sha256",
				Original: existing.PrimerFileSha256,
				Incoming: m.PrimerFileSha256,
			}
		}
		if existing.ReferenceFileSha256 != m.ReferenceFileSha256 {
			return &ManifestConflictError{
				Path:     m.RelativePath(),
				Kind:     "reference_file_sha256",
				Original: existing.ReferenceFileSha256,
				Incoming: m.ReferenceFileSha256,
			}
		}
	}
	sizeLevel[m.Version] = m

	return nil
}

// Remove deletes the entry for (name, ampliconSize, version), pruning
// intermediate levels left empty. Reports whether an entry existed.
func (x *Index) Remove(name string, ampliconSize int, version string) bool {
	nameLevel, ok := x.Schemes[name]
	if !ok {
		return false
	}
	sizeLevel, ok := nameLevel[ampliconSize]
	if !ok {
		return false
	}
	if _, ok := sizeLevel[version]; !ok {
		return false
	}

	delete(sizeLevel, version)
	if len(sizeLevel) == 0 {
		delete(nameLevel, ampliconSize)
	}
	if len(nameLevel) == 0 {
		delete(x.Schemes, name)
	}

	return true
}

// Get looks up an entry by its three-level key.
func (x *Index) Get(name string, ampliconSize int, version string) (ManifestEntry, bool) {
	m, ok := x.Schemes[name][ampliconSize][version]

	return m, ok
}

// Len counts the entries across all levels.
func (x *Index) Len() (n int) {
	for _, nameLevel := range x.Schemes {
		for _, sizeLevel := range nameLevel {
			n += len(sizeLevel)
		}
	}

	return
}

// BuildFrom projects schemes to manifest entries and adds them in input
// order under the given strictness.
func (x *Index) BuildFrom(schemes []*Scheme, baseURL string, strict bool) error {
	for _, s := range schemes {
		if err := x.Add(NewManifestEntry(s, baseURL), strict); err != nil {
			return err
		}
	}

	return nil
}

// MarshalJSON emits the index with entries ordered by name, then numeric
// amplicon size, then version, for reproducible output diffs.
// encoding/json would order the int-keyed level lexically, not numerically.
func (x *Index) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(`{"primerschemes":{`)

	names := make([]string, 0, len(x.Schemes))
	for name := range x.Schemes {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		if i > 0 {
			b.WriteByte(',')
		}
		nameKey, _ := json.Marshal(name)
		b.Write(nameKey)
		b.WriteString(":{")

		nameLevel := x.Schemes[name]
		sizes := make([]int, 0, len(nameLevel))
		for size := range nameLevel {
			sizes = append(sizes, size)
		}
		sort.Ints(sizes)

		for j, size := range sizes {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(strconv.Itoa(size)))
			b.WriteString(":{")

			sizeLevel := nameLevel[size]
			versions := make([]string, 0, len(sizeLevel))
			for version := range sizeLevel {
				versions = append(versions, version)
			}
			sort.Strings(versions)

			for k, version := range versions {
				if k > 0 {
					b.WriteByte(',')
				}
				versionKey, _ := json.Marshal(version)
				b.Write(versionKey)
				b.WriteByte(':')
				entry, err := json.Marshal(sizeLevel[version])
				if err != nil {
					return nil, err
				}
				b.Write(entry)
			}
			b.WriteByte('}')
		}
		b.WriteByte('}')
	}
	b.WriteString("}}")

	return b.Bytes(), nil
}

// ReadIndex loads a previously serialized manifest index.
func ReadIndex(path string) (*Index, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	x := NewIndex()
	if err := json.Unmarshal(dat, x); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	return x, nil
}

// WriteIndex writes the manifest index wholesale, atomically.
func WriteIndex(path string, x *Index) error {
	dat, err := json.MarshalIndent(x, "", "    ")
	if err != nil {
		return err
	}

	return atomicWriteFile(path, append(dat, '\n'))
}
