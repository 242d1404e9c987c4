package bundle

import (
	"archive/zip"
	"encoding/xml"
	"io"
)

// Metadata is the info block of a zhfst archive's index.xml: locale,
// human-readable titles/descriptions per language, and provenance. Fields
// left empty simply weren't present in the archive; no field here is
// required for a Bundle to load or search.
type Metadata struct {
	XMLName     xml.Name          `xml:"hfstspeller"`
	Locale      string            `xml:"info>locale"`
	Title       []LanguageVersion `xml:"info>title"`
	Description []LanguageVersion `xml:"info>description"`
	Version     string            `xml:"info>version"`
	Date        string            `xml:"info>date"`
	Producer    string            `xml:"info>producer"`
	Email       string            `xml:"info>email"`
	Website     string            `xml:"info>website"`
}

// LanguageVersion pairs a language-tagged translation with its BCP-47(ish)
// language code, mirroring the archive's lang="xx" attributed elements.
type LanguageVersion struct {
	Lang  string `xml:"lang,attr"`
	Value string `xml:",chardata"`
}

// Dump renders the metadata for debugging; nothing else in this repo
// inspects individual fields.
func (m Metadata) Dump() string {
	out, err := xml.MarshalIndent(m, "", "  ")
	if err != nil {
		return ""
	}
	return string(out)
}

func loadMetadata(f *zip.File) (Metadata, error) {
	rc, err := f.Open()
	if err != nil {
		return Metadata{}, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return Metadata{}, err
	}
	var m Metadata
	if err := xml.Unmarshal(data, &m); err != nil {
		return Metadata{}, err
	}
	return m, nil
}
