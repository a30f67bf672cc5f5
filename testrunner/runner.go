package testrunner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/example/minjs/builtins"
	"github.com/example/minjs/interpreter"
)

type Result int

const (
	Pass Result = iota
	Fail
	Skip
	Error
)

func (r Result) String() string {
	switch r {
	case Pass:
		return "PASS"
	case Fail:
		return "FAIL"
	case Skip:
		return "SKIP"
	case Error:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Node seeds one document element before the script runs.
type Node struct {
	ID   string `yaml:"id"`
	Tag  string `yaml:"tag"`
	Text string `yaml:"text"`
}

// Event is dispatched against the document after the script's first drive.
type Event struct {
	Node string `yaml:"node"`
	Type string `yaml:"type"`
}

// Case is one scripted scenario from a manifest: a script (or a single
// expression), the console lines it must produce, and optionally the error
// it must raise.
type Case struct {
	Name    string   `yaml:"name"`
	Skip    string   `yaml:"skip"` // non-empty reason skips the case
	Script  string   `yaml:"script"`
	Expr    string   `yaml:"expr"`
	Result  string   `yaml:"result"` // inspect rendering of Expr's value
	Console []string `yaml:"console"`
	Error   string   `yaml:"error"` // substring of the expected error
	Nodes   []Node   `yaml:"nodes"`
	Events  []Event  `yaml:"events"`
}

// Manifest is one YAML fixture file.
type Manifest struct {
	Name  string `yaml:"name"`
	Cases []Case `yaml:"cases"`
}

// Load reads a manifest file.
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &m, nil
}

// LoadDir reads every .yaml manifest under dir, sorted by name.
func LoadDir(dir string) ([]*Manifest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read manifest dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	var out []*Manifest
	for _, p := range paths {
		m, err := Load(p)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// CaseResult is the outcome of one case.
type CaseResult struct {
	Manifest string
	Case     string
	Result   Result
	Message  string
	Elapsed  time.Duration
}

// RunCase executes one case in a fresh interpreter world.
func RunCase(c Case) CaseResult {
	start := time.Now()
	res := CaseResult{Case: c.Name}
	finish := func(r Result, msg string) CaseResult {
		res.Result = r
		res.Message = msg
		res.Elapsed = time.Since(start)
		return res
	}
	if c.Skip != "" {
		return finish(Skip, c.Skip)
	}

	var lines []string
	ip := interpreter.New(interpreter.WithConsole(
		builtins.WriterSink(func(level, line string) {
			lines = append(lines, line)
		})))
	defer ip.Close()

	for _, n := range c.Nodes {
		tag := n.Tag
		if tag == "" {
			tag = "div"
		}
		ip.Doc.AddNode(n.ID, tag, n.Text)
	}

	runErr := runProgram(ip, c)

	if c.Error != "" {
		if runErr == nil {
			return finish(Fail, fmt.Sprintf("expected error containing %q, got none", c.Error))
		}
		if !strings.Contains(runErr.Error(), c.Error) {
			return finish(Fail, fmt.Sprintf("expected error containing %q, got %q", c.Error, runErr.Error()))
		}
		return finish(Pass, "")
	}
	if runErr != nil {
		return finish(Error, runErr.Error())
	}
	if len(c.Console) > 0 {
		if len(lines) != len(c.Console) {
			return finish(Fail, fmt.Sprintf("expected %d console lines, got %d: %v",
				len(c.Console), len(lines), lines))
		}
		for i := range lines {
			if lines[i] != c.Console[i] {
				return finish(Fail, fmt.Sprintf("console line %d: expected %q, got %q",
					i, c.Console[i], lines[i]))
			}
		}
	}
	return finish(Pass, "")
}

func runProgram(ip *interpreter.Interp, c Case) error {
	if c.Expr != "" {
		v, err := ip.EvalString(c.Expr)
		if err != nil {
			return err
		}
		if c.Result != "" {
			got := builtins.Inspect(v, 0)
			if got != c.Result {
				return fmt.Errorf("expected result %q, got %q", c.Result, got)
			}
		}
		return nil
	}
	if err := ip.RunScript(c.Script); err != nil {
		return err
	}
	for _, ev := range c.Events {
		if err := ip.DispatchEvent(ev.Node, ev.Type); err != nil {
			return err
		}
	}
	if len(c.Events) > 0 {
		return ip.Drive()
	}
	return nil
}

// RunManifest executes every case in a manifest.
func RunManifest(m *Manifest) []CaseResult {
	out := make([]CaseResult, 0, len(m.Cases))
	for _, c := range m.Cases {
		r := RunCase(c)
		r.Manifest = m.Name
		out = append(out, r)
	}
	return out
}
