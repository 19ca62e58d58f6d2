package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qrlgen-dev/qrlgen/internal/config"
	"github.com/qrlgen-dev/qrlgen/internal/ident"
)

// IgnoreFile lists scan exclusions, one gitignore-style rule per line.
const IgnoreFile = ".qrlignore"

// buildOptions is the resolved per-invocation context: scan root plus the
// target/scope/out settings after flags override qrlgen.toml.
type buildOptions struct {
	Root   string
	Target ident.Target
	Scope  string
	Out    string
	Rules  []string
}

func resolveBuildOptions(cmd *cobra.Command, args []string) (buildOptions, error) {
	root, err := resolveRoot(args)
	if err != nil {
		return buildOptions{}, err
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return buildOptions{}, err
	}

	targetName := cfg.Build.Target
	if flag, _ := cmd.Flags().GetString("target"); flag != "" {
		targetName = flag
	}
	target, err := ident.ParseTarget(targetName)
	if err != nil {
		return buildOptions{}, err
	}

	scope := cfg.Build.Scope
	if cmd.Flags().Changed("scope") {
		scope, _ = cmd.Flags().GetString("scope")
	}

	out := cfg.Build.Out
	if cmd.Flags().Lookup("out") != nil {
		if flag, _ := cmd.Flags().GetString("out"); flag != "" {
			out = flag
		}
	}

	rules, err := loadIgnoreRules(root)
	if err != nil {
		return buildOptions{}, err
	}

	return buildOptions{
		Root:   root,
		Target: target,
		Scope:  scope,
		Out:    out,
		Rules:  rules,
	}, nil
}

func resolveRoot(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	root, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory: %w", err)
	}
	return root, nil
}

func loadIgnoreRules(root string) ([]string, error) {
	f, err := os.Open(filepath.Join(root, IgnoreFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", IgnoreFile, err)
	}
	defer f.Close()

	rules := make([]string, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", IgnoreFile, err)
	}
	return rules, nil
}
