package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/lognerd/internal/errors"
	"github.com/thoreinstein/lognerd/internal/paths"
	"github.com/thoreinstein/lognerd/internal/platform"
	"github.com/thoreinstein/lognerd/pkg/fileutil"
)

// genDocDir and genDocFormat hold the gen-doc flags.
var (
	genDocDir    string
	genDocFormat string
)

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate reference documentation for the CLI",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE:   runGenDoc,
}

func init() {
	genDocCmd.Flags().StringVarP(&genDocDir, "dir", "d", "", "output directory for documentation")
	genDocCmd.Flags().StringVar(&genDocFormat, "format", "markdown", "output format (markdown, man)")
	rootCmd.AddCommand(genDocCmd)
}

func runGenDoc(cmd *cobra.Command, _ []string) error {
	if genDocDir == "" {
		return errors.NewUserError(errors.New("output directory is required"), "Use: --dir <path>")
	}
	fs := platform.Host().Fs
	if fs == nil {
		return errors.NewSystemError(errors.New("no file access in this runtime"), "")
	}
	if err := fileutil.EnsureDir(fs, genDocDir, paths.DefaultDirPerm); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	switch genDocFormat {
	case "markdown", "md":
		if err := doc.GenMarkdownTreeCustom(rootCmd, genDocDir, filePrepender, linkHandler); err != nil {
			return errors.Wrap(err, "generating markdown")
		}
	case "man":
		header := &doc.GenManHeader{Title: "LOGNERD", Section: "1", Source: "lognerd " + rootCmd.Version}
		if err := doc.GenManTree(rootCmd, header, genDocDir); err != nil {
			return errors.Wrap(err, "generating man pages")
		}
	default:
		return errors.NewUserError(
			errors.Newf("unsupported format %q", genDocFormat),
			"Use: --format markdown or --format man")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Documentation generated in %s\n", genDocDir)
	return nil
}

func filePrepender(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	// lognerd_config_init.md -> lognerd config init
	title := strings.ReplaceAll(base, "_", " ")

	return fmt.Sprintf(`---
title: "%s"
description: "Reference for %s command"
draft: false
toc: true
---
`, title, title)
}

func linkHandler(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return "/docs/reference/" + strings.ToLower(base) + "/"
}
