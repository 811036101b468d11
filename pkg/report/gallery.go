package report

import (
	"path/filepath"
	"sort"

	"github.com/beevik/etree"

	"github.com/arthur-debert/piconlink/pkg/config"
	"github.com/arthur-debert/piconlink/pkg/errors"
	"github.com/arthur-debert/piconlink/pkg/types"
)

// WriteGallery renders the whole icon inventory as a fixed-column image
// gallery and writes it to dir/index.html. The gallery covers every
// inventory icon sorted by filename, independent of reconciliation outcome.
func WriteGallery(fsys types.FS, dir, title string, icons map[string]types.IconEntry, cfg *config.Config) error {
	names := iconFileNames(icons)

	doc := etree.NewDocument()
	doc.CreateDirective("DOCTYPE html")

	html := doc.CreateElement("html")

	head := html.CreateElement("head")
	head.CreateElement("title").SetText(title)

	body := html.CreateElement("body")
	body.CreateAttr("text", "#ffffff")
	body.CreateAttr("bgcolor", "#303030")
	body.CreateAttr("link", "#0000ff")
	body.CreateAttr("vlink", "#800080")
	body.CreateAttr("alink", "#ff00ff")

	heading := body.CreateElement("h1")
	heading.CreateElement("center").SetText(title)

	table := body.CreateElement("table")
	table.CreateAttr("border", "0")
	table.CreateAttr("align", "center")
	table.CreateAttr("cellspacing", "0")
	table.CreateAttr("cellpadding", "0")

	tbody := table.CreateElement("tbody")
	var row *etree.Element
	for i, name := range names {
		if i%cfg.GalleryColumns == 0 {
			row = tbody.CreateElement("tr")
		}
		img := row.CreateElement("td").CreateElement("img")
		img.CreateAttr("src", filepath.ToSlash(filepath.Join(cfg.ChannelDir, name)))
	}

	doc.Indent(2)
	content, err := doc.WriteToString()
	if err != nil {
		return errors.Wrap(err, errors.ErrIndexWrite, "can't render index.html")
	}

	path := filepath.Join(dir, "index.html")
	if err := fsys.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrIndexWrite, "can't write to %s", path)
	}
	return nil
}

// iconFileNames returns the distinct inventory filenames, sorted.
func iconFileNames(icons map[string]types.IconEntry) []string {
	seen := make(map[string]bool)
	var names []string
	for _, entry := range icons {
		if !seen[entry.FileName] {
			seen[entry.FileName] = true
			names = append(names, entry.FileName)
		}
	}
	sort.Strings(names)
	return names
}
