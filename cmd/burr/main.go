// burr-solver - a six-piece burr puzzle solver and web service.
// Copyright (C) 2026 Matthew Johnson.
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License along
// with this program; if not, write to the Free Software Foundation, Inc.,
// 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.

// Command-line client for the burr solver.
package main

import (
	"fmt"
	"os"

	"github.com/deadsy/sdfx/sdf"
	"github.com/matajoh/burr-solver/burr"
	"github.com/matajoh/burr-solver/mesh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// puzzleFlags picks the puzzle every subcommand works on: a
// bundled sample by name, or a YAML file with a name and six
// shape texts.
type puzzleFlags struct {
	sample string
	file   string
}

func (pf *puzzleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&pf.sample, "sample", "", "bundled puzzle name (see 'burr samples')")
	cmd.Flags().StringVar(&pf.file, "puzzle", "", "path to a YAML puzzle file")
}

func (pf *puzzleFlags) load() (*burr.Puzzle, error) {
	var summary *burr.Summary
	switch {
	case pf.sample != "" && pf.file != "":
		return nil, fmt.Errorf("--sample and --puzzle are mutually exclusive")
	case pf.sample != "":
		s, ok := burr.Sample(pf.sample)
		if !ok {
			return nil, fmt.Errorf("no bundled puzzle named %q", pf.sample)
		}
		summary = s
	case pf.file != "":
		bytes, err := os.ReadFile(pf.file)
		if err != nil {
			return nil, err
		}
		summary = &burr.Summary{}
		if err := yaml.Unmarshal(bytes, summary); err != nil {
			return nil, fmt.Errorf("couldn't parse %q: %v", pf.file, err)
		}
	default:
		return nil, fmt.Errorf("name a puzzle with --sample or --puzzle")
	}
	return burr.New(summary)
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "burr",
		Short:        "Solve and take apart six-piece burr puzzles",
		SilenceUsage: true,
	}
	root.AddCommand(newSamplesCommand())
	root.AddCommand(newSolveCommand())
	root.AddCommand(newDisassembleCommand())
	root.AddCommand(newSTLCommand())
	return root
}

func newSamplesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "samples",
		Short: "List the bundled sample puzzles",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range burr.Samples() {
				p, err := burr.New(s)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s level %d  %s\n",
					s.Name, p.Level(), s.Signature()[:12])
			}
			return nil
		},
	}
}

func newSolveCommand() *cobra.Command {
	var pf puzzleFlags
	var selection string
	var diagram bool
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find an assembly that fills the solid",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.load()
			if err != nil {
				return err
			}
			a, err := assemble(p, selection)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (level %d, %d candidates examined)\n",
				a.String(), p.Level(), a.Candidates)
			if diagram {
				fmt.Fprint(out, a.DiagramString())
			}
			return nil
		},
	}
	pf.register(cmd)
	cmd.Flags().StringVar(&selection, "selection", "", "explicit placement tokens to validate")
	cmd.Flags().BoolVar(&diagram, "diagram", false, "print a layer diagram of the assembly")
	return cmd
}

func newDisassembleCommand() *cobra.Command {
	var pf puzzleFlags
	var selection string
	var budget int
	cmd := &cobra.Command{
		Use:   "disassemble",
		Short: "Plan the slides that take an assembled puzzle apart",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.load()
			if err != nil {
				return err
			}
			a, err := assemble(p, selection)
			if err != nil {
				return err
			}
			plan, err := p.Disassemble(a, budget)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", a.String())
			fmt.Fprint(out, plan.String())
			fmt.Fprintf(out, "(%d states searched)\n", plan.States)
			return nil
		},
	}
	pf.register(cmd)
	cmd.Flags().StringVar(&selection, "selection", "", "explicit placement tokens to validate")
	cmd.Flags().IntVar(&budget, "budget", burr.DefaultBudget, "planner state budget")
	return cmd
}

func newSTLCommand() *cobra.Command {
	var pf puzzleFlags
	var out string
	var piece int
	cmd := &cobra.Command{
		Use:   "stl",
		Short: "Write a printable STL model of a piece or the assembly",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.load()
			if err != nil {
				return err
			}
			var model sdf.SDF3
			if piece > 0 {
				model, err = mesh.Piece(p, piece)
			} else {
				var a *burr.Assembly
				if a, err = p.Solve(); err == nil {
					model, err = mesh.Assembly(a)
				}
			}
			if err != nil {
				return err
			}
			if err := mesh.WriteSTL(model, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}
	pf.register(cmd)
	cmd.Flags().StringVar(&out, "out", "burr.stl", "output STL path")
	cmd.Flags().IntVar(&piece, "piece", 0, "model just this piece (1-6) instead of the assembly")
	return cmd
}

// assemble resolves a command's assembly, preferring an explicit
// selection the same way the service handlers do.
func assemble(p *burr.Puzzle, selection string) (*burr.Assembly, error) {
	if selection != "" {
		return p.Place(selection)
	}
	return p.Solve()
}
