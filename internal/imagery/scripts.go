package imagery

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/deck"
)

// Optimized image bounds and quality.
const (
	MaxWidth    = 400
	MaxHeight   = 600
	JPEGQuality = 80
)

// rwsScan matches the public domain RWS1909 scan names, e.g.
// "RWS1909_-_Cups_12 (1).jpeg".
var rwsScan = regexp.MustCompile(`^RWS1909_-_(Wands|Cups|Swords|Pentacles)_(\d{2})(?: \(\d+\))?\.jpe?g$`)

// RenameReport lists what RenameRWS did, by source file name.
type RenameReport struct {
	Renamed []string
	Skipped []string
	Failed  map[string]error
}

// RWSName returns the target file name of an RWS1909 scan, e.g.
// "knight_of_cups.jpg".
func RWSName(scan string) (string, bool) {
	m := rwsScan.FindStringSubmatch(scan)
	if m == nil {
		return "", false
	}
	suit, _ := card.ParseSuit(m[1])
	rank, _ := strconv.Atoi(m[2])
	name := deck.RankName(rank)
	if name == "" {
		return "", false
	}
	return FileName(deck.MinorName(name, string(suit))), true
}

// RenameRWS renames RWS1909 scans in dir to card image names. A scan whose
// target already exists is skipped, so duplicate scans keep the first copy.
func RenameRWS(dir string) (RenameReport, error) {
	report := RenameReport{Failed: map[string]error{}}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return report, fmt.Errorf("error reading image directory: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	for _, name := range names {
		target, ok := RWSName(name)
		if !ok {
			continue
		}
		targetPath := filepath.Join(dir, target)
		if _, err := os.Stat(targetPath); err == nil {
			report.Skipped = append(report.Skipped, name)
			continue
		}
		if err := os.Rename(filepath.Join(dir, name), targetPath); err != nil {
			report.Failed[name] = err
			continue
		}
		report.Renamed = append(report.Renamed, name)
	}
	return report, nil
}

// OptimizeResult describes one optimized image.
type OptimizeResult struct {
	Source       string
	Output       string
	OriginalSize int64
	OutputSize   int64
}

// Savings returns the size reduction in percent.
func (r OptimizeResult) Savings() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return float64(r.OriginalSize-r.OutputSize) / float64(r.OriginalSize) * 100
}

// Optimize fits every image in src into MaxWidth x MaxHeight without
// enlarging it and writes it to dst as a JPEG with a .jpg extension.
func Optimize(src, dst string) ([]OptimizeResult, error) {
	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, fmt.Errorf("error reading image directory: %v", err)
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		return nil, fmt.Errorf("error creating output directory: %v", err)
	}

	var results []OptimizeResult
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || !slices.Contains([]string{".jpg", ".jpeg", ".png"}, ext) {
			continue
		}
		res, err := optimizeFile(filepath.Join(src, e.Name()), dst)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func optimizeFile(path, dst string) (OptimizeResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return OptimizeResult{}, err
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return OptimizeResult{}, fmt.Errorf("error decoding %s: %v", path, err)
	}

	fitted := imaging.Fit(img, MaxWidth, MaxHeight, imaging.Lanczos)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	output := filepath.Join(dst, base+".jpg")
	if err := imaging.Save(fitted, output, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return OptimizeResult{}, fmt.Errorf("error writing %s: %v", output, err)
	}

	out, err := os.Stat(output)
	if err != nil {
		return OptimizeResult{}, err
	}
	return OptimizeResult{
		Source:       path,
		Output:       output,
		OriginalSize: info.Size(),
		OutputSize:   out.Size(),
	}, nil
}
