package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gitlab.com/markorv.net/isaharness/internal/domain"
	"gitlab.com/markorv.net/isaharness/internal/static/errs"
)

const dumpSuffix = ".ram_dump.bin"

// HarnessConfig describes where the simulator and the test binaries live and
// how each case is run.
type HarnessConfig struct {
	SimulatorPath string
	// SimulatorWrapper, when set, is the command line the simulator is run
	// through, e.g. "taskset -c 2" or "timeout -k 5 600".
	SimulatorWrapper []string
	// SimulatorEnv holds extra KEY=VALUE pairs for the simulator process.
	SimulatorEnv []string
	RomPath      string
	TestsPath    string
	DumpDir      string
	// MaxClock is handed to the simulator, which parses it as hex.
	MaxClock    uint64
	LoadBase    uint64
	Jobs        int
	CaseTimeout time.Duration
	KeepDumps   bool
	Groups      string
}

func NewHarnessConfig() *HarnessConfig {
	base := getEnv("BASE_PATH", ".")
	return &HarnessConfig{
		SimulatorPath:    getEnv("SIMULATOR_PATH", filepath.Join(base, "obj_dir", "VMarkoRvCore")),
		SimulatorWrapper: strings.Fields(os.Getenv("SIMULATOR_WRAPPER")),
		SimulatorEnv:     getListEnv("SIMULATOR_ENV"),
		RomPath:          getEnv("ROM_PATH", filepath.Join(base, "emulator", "assets", "boot.elf")),
		TestsPath:        getEnv("TESTS_PATH", filepath.Join(base, "tests", "riscv-tests", "isa")),
		DumpDir:          getEnv("DUMP_DIR", filepath.Join(base, "tests")),
		MaxClock:         getHexEnv("MAX_CLOCK", 0x10000),
		LoadBase:         getHexEnv("LOAD_BASE", domain.LoadBase),
		Jobs:             getIntEnv("JOBS", runtime.NumCPU()),
		CaseTimeout:      time.Duration(getIntEnv("CASE_TIMEOUT_SEC", 0)) * time.Second,
		KeepDumps:        os.Getenv("KEEP_DUMPS") == "true",
		Groups:           os.Getenv("TEST_GROUPS"),
	}
}

// BinaryPath is the test binary of a case; it doubles as the RAM image
func (c *HarnessConfig) BinaryPath(tc domain.TestCase) string {
	return filepath.Join(c.TestsPath, tc.ID)
}

// DumpPath is unique per case so that parallel pipelines never share a file
func (c *HarnessConfig) DumpPath(tc domain.TestCase) string {
	return filepath.Join(c.DumpDir, tc.ID+dumpSuffix)
}

// Validate checks everything a run needs before the first case starts.
// Every error wraps errs.ErrConfiguration.
func (c *HarnessConfig) Validate() error {
	if c.Jobs < 1 {
		return fmt.Errorf("%w: worker count must be at least 1, got %d", errs.ErrConfiguration, c.Jobs)
	}
	if c.CaseTimeout < 0 {
		return fmt.Errorf("%w: negative case timeout %s", errs.ErrConfiguration, c.CaseTimeout)
	}
	for _, kv := range c.SimulatorEnv {
		if !strings.Contains(kv, "=") || strings.HasPrefix(kv, "=") {
			return fmt.Errorf("%w: simulator environment entry %q is not KEY=VALUE", errs.ErrConfiguration, kv)
		}
	}
	if len(c.SimulatorWrapper) > 0 {
		if _, err := exec.LookPath(c.SimulatorWrapper[0]); err != nil {
			return fmt.Errorf("%w: simulator wrapper: %v", errs.ErrConfiguration, err)
		}
	}
	if err := requireFile("simulator", c.SimulatorPath); err != nil {
		return err
	}
	if err := requireFile("rom image", c.RomPath); err != nil {
		return err
	}
	info, err := os.Stat(c.TestsPath)
	if err != nil {
		return fmt.Errorf("%w: tests directory: %v", errs.ErrConfiguration, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: tests path %s is not a directory", errs.ErrConfiguration, c.TestsPath)
	}
	if err := os.MkdirAll(c.DumpDir, 0o755); err != nil {
		return fmt.Errorf("%w: dump directory: %v", errs.ErrConfiguration, err)
	}
	return nil
}

func requireFile(what, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", errs.ErrConfiguration, what, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s %s is a directory", errs.ErrConfiguration, what, path)
	}
	return nil
}
