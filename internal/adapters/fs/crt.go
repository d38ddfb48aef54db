package fs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.trai.ch/plink/internal/core/domain"
	"go.trai.ch/plink/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CRTFinder = (*CRTFinder)(nil)

const (
	visualStudioDir = "Microsoft Visual Studio 14.0"
	wdkURL          = "https://docs.microsoft.com/en-us/legal/windows/hardware/enterprise-wdk-license-2015"
	slowSearch      = 50 * time.Millisecond
)

var (
	requiredComponents  = []string{"VC", "lib"}
	forbiddenComponents = []string{"arm", "arm64", "onecore", "store"}
)

// CRTFinder locates vcruntime.lib for Windows links. The result is memoised.
type CRTFinder struct {
	logger ports.Logger
	walker *Walker
	getenv func(string) string

	mu    sync.Mutex
	found string
}

// NewCRTFinder creates a CRTFinder reading the process environment.
func NewCRTFinder(logger ports.Logger, walker *Walker) *CRTFinder {
	return &CRTFinder{logger: logger, walker: walker, getenv: os.Getenv}
}

// WithEnv replaces the environment lookup.
func (c *CRTFinder) WithEnv(getenv func(string) string) *CRTFinder {
	c.getenv = getenv
	return c
}

// Find implements ports.CRTFinder.
func (c *CRTFinder) Find(host domain.Triple) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.found != "" {
		return c.found, nil
	}

	path, err := c.find(host)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		msg := fmt.Sprintf("%s doesn't exist at %q", domain.CRTFileName, path)
		return "", zerr.With(zerr.Wrap(domain.ErrToolNotFound, msg), "path", path)
	}

	c.found = path
	return path, nil
}

func (c *CRTFinder) find(host domain.Triple) (string, error) {
	if env := c.getenv(domain.CRTEnvVar); env != "" {
		return env, nil
	}

	local := "./" + domain.CRTFileName
	if _, err := os.Stat(local); err == nil {
		return local, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", zerr.With(zerr.Wrap(err, "failed to stat file"), "path", local)
	}

	if path := c.search(host); path != "" {
		return path, nil
	}
	return "", zerr.Wrap(domain.ErrToolNotFound, missingCRTGuidance(host))
}

// searchRoots lists the directories walked for an installed Visual Studio, in order, without duplicates.
func (c *CRTFinder) searchRoots(host domain.Triple) []string {
	roots := []string{"./", "./wdk/Program Files", "./Program Files"}
	if host.IsWindows() {
		if pf := c.getenv("ProgramFiles"); pf != "" {
			roots = append(roots, pf+" (x86)", pf)
		}
		roots = append(roots, `C:\Program Files (x86)`, `C:\Program Files`)
	}

	unique := roots[:0:0]
	for _, r := range roots {
		if !slices.Contains(unique, r) {
			unique = append(unique, r)
		}
	}
	return unique
}

func (c *CRTFinder) search(host domain.Triple) string {
	start := time.Now()
	c.logger.Info("Looking for " + domain.CRTFileName)

	var found []string
	for _, root := range c.searchRoots(host) {
		for path := range c.walker.WalkFiles(filepath.Join(root, visualStudioDir), forbiddenComponents) {
			if filepath.Base(path) != domain.CRTFileName || !acceptCRTPath(path) {
				continue
			}
			c.logger.Info("   " + path)
			found = append(found, path)
		}
	}
	if len(found) == 0 {
		return ""
	}

	slices.Sort(found)
	chosen := found[0]
	c.logger.Info("Using " + chosen)
	if time.Since(start) > slowSearch {
		cwd, _ := os.Getwd()
		c.logger.Info(fmt.Sprintf("NOTE: You can make compilation faster by copying that file into\n    %s\nOr you can set the environment variable %s", cwd, domain.CRTEnvVar))
	}
	return chosen
}

// acceptCRTPath requires every component in requiredComponents and none in forbiddenComponents.
func acceptCRTPath(path string) bool {
	parts := strings.FieldsFunc(filepath.ToSlash(path), func(r rune) bool { return r == '/' || r == '\\' })
	for _, part := range parts {
		if slices.Contains(forbiddenComponents, part) {
			return false
		}
	}
	for _, req := range requiredComponents {
		if !slices.Contains(parts, req) {
			return false
		}
	}
	return true
}

func missingCRTGuidance(host domain.Triple) string {
	var b strings.Builder
	fmt.Fprintf(&b, "unable to find %s\n", domain.CRTFileName)
	if host.IsWindows() {
		b.WriteString("You must install Microsoft Visual Studio.\n")
		b.WriteString("    https://visualstudio.microsoft.com/\n")
		b.WriteString("This is the usual way. Or you can download the Enterprise Windows Developer Kit:\n")
	} else {
		b.WriteString("To cross-compile to Windows, you need to download the Enterprise Windows Developer Kit:\n")
	}
	fmt.Fprintf(&b, "    %s\n", wdkURL)
	b.WriteString("You will need to accept their EULA, which will let you download the archive.\n")
	b.WriteString("Next to the toolchain file, create a folder 'wdk' and extract the archive into it,\n")
	b.WriteString("so that there is a 'wdk/Program Files/' directory.")
	return b.String()
}
