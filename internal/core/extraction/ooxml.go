package extraction

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// Relationship type suffixes shared by the DOCX and PPTX packages.
const (
	relTypeHyperlink = "/hyperlink"
	relTypeImage     = "/image"
)

// relationships mirrors the OOXML .rels part that both DOCX and PPTX use
// to point at hyperlinks and media.
type relationships struct {
	Rels []struct {
		Type       string `xml:"Type,attr"`
		Target     string `xml:"Target,attr"`
		TargetMode string `xml:"TargetMode,attr"`
	} `xml:"Relationship"`
}

func readZipFile(zf *zip.File) ([]byte, error) {
	rc, err := zf.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func readZipEntry(zr *zip.Reader, name string) []byte {
	for _, zf := range zr.File {
		if zf.Name == name {
			data, err := readZipFile(zf)
			if err != nil {
				return nil
			}
			return data
		}
	}
	return nil
}

// relationshipTargets returns the Target of every relationship in relsPath
// whose Type ends with typeSuffix (e.g. "/hyperlink", "/image").
func relationshipTargets(zr *zip.Reader, relsPath, typeSuffix string) []string {
	data := readZipEntry(zr, relsPath)
	if data == nil {
		return nil
	}
	var rels relationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil
	}

	var targets []string
	for _, rel := range rels.Rels {
		if !strings.HasSuffix(rel.Type, typeSuffix) || rel.Target == "" {
			continue
		}
		// Hyperlink relationships can point at in-document anchors; only
		// external targets count as links.
		if typeSuffix == relTypeHyperlink && rel.TargetMode != "External" {
			continue
		}
		targets = append(targets, rel.Target)
	}
	return targets
}

// drawingText walks DrawingML and collects the character data inside
// <a:t> runs, one line per run.
func drawingText(data []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var sb strings.Builder
	inRun := false
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inRun = true
			}
		case xml.CharData:
			if inRun {
				sb.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inRun = false
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}
