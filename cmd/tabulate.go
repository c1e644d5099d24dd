/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/notargets/gobasis/element"
	"github.com/notargets/gobasis/polyset"
	"github.com/notargets/gobasis/reference"
	"github.com/notargets/gobasis/utils"
)

// TabulateCmd represents the tabulate command
var TabulateCmd = &cobra.Command{
	Use:   "tabulate",
	Short: "Tabulate a nodal basis and its derivatives at points",
	Long: `
Tabulates every basis function of an element and all of its derivatives up to
the requested order. Points are cell coordinates unless an entity is given, in
which case they are coordinates on that sub-entity.

gobasis tabulate -f RT -c tri -n 1 --order 1 --points "-0.5,-0.5;0,-0.2"
gobasis tabulate -f Lagrange -c tet -n 2 --entity 2,0 --points "-1,-1;0,-1"`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			el        element.Element
			pts       [][]float64
			tab       polyset.Tabulation
			entity    *reference.Entity
			order, _  = cmd.Flags().GetInt("order")
			ptStr, _  = cmd.Flags().GetString("points")
			entStr, _ = cmd.Flags().GetString("entity")
			np, _     = cmd.Flags().GetInt("parallel")
			perf, _   = cmd.Flags().GetBool("perf")
		)
		if el, err = buildElement(cmd); err != nil {
			return
		}
		if entity, err = parseEntity(entStr); err != nil {
			return
		}
		if len(ptStr) == 0 {
			pts = el.Cell().Vertices()
			if entity != nil {
				// The sub-entity's own reference vertices
				pts = [][]float64{{}}
				if shape, ok := el.Cell().EntityShape(entity.Dim); ok {
					pts = reference.NewCell(shape).Vertices()
				}
			}
		} else if pts, err = parsePoints(ptStr); err != nil {
			return
		}
		run := func() (err error) {
			tab, err = element.TabulateParallel(el, order, pts, entity, np)
			return
		}
		start := time.Now()
		if perf {
			var count uint64
			if count, err = countInstructions(run); err != nil {
				return
			}
			slog.Info("tabulation cost", "instructions", count, "elapsed", time.Since(start))
		} else {
			if err = run(); err != nil {
				return
			}
			slog.Debug("tabulation cost", "elapsed", time.Since(start))
		}
		printTabulation(cmd.OutOrStdout(), el, tab)
		return
	},
}

func init() {
	rootCmd.AddCommand(TabulateCmd)
	addElementFlags(TabulateCmd)
	TabulateCmd.Flags().IntP("order", "o", 0, "highest derivative order")
	TabulateCmd.Flags().StringP("points", "p", "", "points as \"x,y;x,y\", the entity or cell vertices when empty")
	TabulateCmd.Flags().StringP("entity", "e", "", "sub-entity as \"dim,id\" the points live on")
	TabulateCmd.Flags().Int("parallel", 1, "number of concurrent point buckets, 0 uses every CPU")
	TabulateCmd.Flags().Bool("perf", false, "count the CPU instructions spent tabulating (linux only)")
}

// printTabulation writes one [basis function, point] matrix per derivative
// and value component
func printTabulation(w io.Writer, el element.Element, tab polyset.Tabulation) {
	sd := el.Cell().SpatialDimension()
	fmt.Fprintf(w, "%s on %v, %d basis functions\n", el.Name(), el.Cell().Shape(), el.SpaceDimension())
	fmt.Fprintf(w, "%v\t= Entity Dofs\n", el.EntityDofs())
	for _, alpha := range tab.Keys() {
		T := tab[alpha]
		members, ncomp, npts := T.Dims()
		for c := 0; c < ncomp; c++ {
			M := utils.NewMatrix(members, npts)
			for m := 0; m < members; m++ {
				for p := 0; p < npts; p++ {
					M.Set(m, p, T.At(m, c, p))
				}
			}
			label := fmt.Sprintf("D%s", alpha.Format(sd))
			if ncomp > 1 {
				label = fmt.Sprintf("%s[%d]", label, c)
			}
			fmt.Fprint(w, M.Print(label))
		}
	}
}
