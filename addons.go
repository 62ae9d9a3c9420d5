package steamworkshop

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// AddonExt is the extension of Source engine addon packages.
const AddonExt = ".vpk"

// AddonFiles lists the addon packages (*.vpk) directly inside dir, sorted
// by name. Subdirectories are not searched.
//
// Workshop downloads are named after their published file id, so the
// listing pairs with [AddonID] and [Client.GetPublishedFileDetails]:
//
//	files, err := steamworkshop.AddonFiles("left4dead2/addons/workshop")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	var ids []string
//	for _, f := range files {
//	    if id, ok := steamworkshop.AddonID(f.Name()); ok {
//	        ids = append(ids, id)
//	    }
//	}
func AddonFiles(dir string) ([]fs.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list addons: %w", err)
	}

	files := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), AddonExt) {
			continue
		}
		files = append(files, e)
	}
	return files, nil
}

// AddonID returns the published file id an addon file is named after, as
// in "addons/workshop/121221044.vpk". ok is false for any other name.
func AddonID(name string) (id string, ok bool) {
	id, found := strings.CutSuffix(filepath.Base(name), AddonExt)
	if !found || validateFileID("name", id) != nil {
		return "", false
	}
	return id, true
}
