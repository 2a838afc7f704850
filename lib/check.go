package changewallpaperlib

import (
	"path/filepath"
	"sort"
	"sync"

	"github.com/awused/composite-wallpapers/composite"
)

const checkBatchSize = 200

type InvalidImage struct {
	Path RelativePath
	Err  error
}

type CheckReport struct {
	Pool    composite.Pool
	Invalid []InvalidImage
	// Paths in .properties.toml that don't match any original
	StaleProps []string
}

// CheckOriginals reads the header of every original, collecting the images
// that can't be decoded instead of aborting on the first one like BuildPool.
func CheckOriginals(originals []RelativePath) (CheckReport, error) {
	candidates := make([]composite.Candidate, len(originals))
	errs := make([]error, len(originals))

	var wg sync.WaitGroup

	for i, rel := range originals {
		abs, err := GetFullInputPath(rel)
		if err != nil {
			return CheckReport{}, err
		}

		wg.Add(1)
		go func(i int, rel RelativePath, abs AbsolutePath) {
			defer wg.Done()
			candidates[i], errs[i] = ReadCandidate(abs)
			candidates[i].Path = rel
		}(i, rel, abs)

		// Run in batches to avoid opening too many files at once
		if (i+1)%checkBatchSize == 0 {
			wg.Wait()
		}
	}

	wg.Wait()

	report := CheckReport{}
	valid := make([]composite.Candidate, 0, len(candidates))
	for i, c := range candidates {
		if errs[i] != nil {
			report.Invalid = append(report.Invalid, InvalidImage{originals[i], errs[i]})
			continue
		}
		valid = append(valid, c)
	}
	report.Pool = composite.NewPool(valid)
	report.StaleProps = staleProps(originals)

	return report, nil
}

func staleProps(originals []RelativePath) []string {
	if len(props) == 0 {
		return nil
	}

	existing := make(map[string]bool, len(originals))
	for _, o := range originals {
		existing[filepath.ToSlash(o)] = true
	}

	stale := []string{}
	for p := range props {
		if !existing[p] {
			stale = append(stale, p)
		}
	}
	sort.Strings(stale)
	return stale
}
