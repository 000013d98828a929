package etl

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

const defaultNodeBinary = "node"

// RunPreprocess runs the configured Node.js script ahead of loading. A missing
// script, missing runtime or failing script is logged and reported as false;
// the flow carries on with whatever raw data is present.
func (f *Flow) RunPreprocess(ctx context.Context) bool {
	if f.ScriptPath == "" {
		return false
	}

	if _, err := os.Stat(f.ScriptPath); err != nil {
		log.Warn().Str("script", f.ScriptPath).Msg("Node.js script does not exist")
		return false
	}

	nodeBinary := f.NodeBinary
	if nodeBinary == "" {
		nodeBinary = defaultNodeBinary
	}

	version, err := exec.CommandContext(ctx, nodeBinary, "-v").Output()
	if err != nil {
		log.Warn().Err(err).Str("runtime", nodeBinary).Msg("Failed to run Node.js")
		return false
	}

	log.Info().
		Str("script", f.ScriptPath).
		Str("version", strings.TrimSpace(string(version))).
		Msg("Running preprocess script")

	output, err := exec.CommandContext(ctx, nodeBinary, f.ScriptPath).CombinedOutput()
	if err != nil {
		log.Warn().Err(err).Str("script", f.ScriptPath).Str("output", string(output)).Msg("Failed to run Node.js script")
		return false
	}

	return true
}
