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

	"github.com/spf13/cobra"

	"github.com/notargets/gobasis/element"
)

// DofsCmd represents the dofs command
var DofsCmd = &cobra.Command{
	Use:   "dofs",
	Short: "Describe the degrees of freedom of an element",
	Long: `
Prints the pullback mapping, the entity to dof map with the dofs on the closure
of each facet, the dual functionals and, for elements built from a dual
matrix, its condition number.

gobasis dofs -f BDM -c tri -n 2 --variant integral`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var el element.Element
		if el, err = buildElement(cmd); err != nil {
			return
		}
		printDofs(cmd.OutOrStdout(), el)
		return
	},
}

func init() {
	rootCmd.AddCommand(DofsCmd)
	addElementFlags(DofsCmd)
}

func printDofs(w io.Writer, el element.Element) {
	fmt.Fprintf(w, "%s on %v\n", el.Name(), el.Cell().Shape())
	fmt.Fprintf(w, "%d\t\t\t= Space Dimension\n", el.SpaceDimension())
	fmt.Fprintf(w, "%v\t\t\t= Value Shape\n", el.ValueShape())
	fmt.Fprintf(w, "%v\t= Mapping\n", el.Mapping())
	em := el.EntityDofs()
	fmt.Fprintf(w, "%v\t= Entity Dofs\n", em)
	if em.NumDofs() != 0 {
		fmt.Fprintf(w, "%d\t\t\t= Incidence Nonzeros\n", em.Incidence().NNZ())
	}
	sd := el.Cell().SpatialDimension()
	for f := 0; f < el.Cell().NumEntities(sd-1); f++ {
		if dofs, err := em.ClosureDofs(sd-1, f); err == nil {
			fmt.Fprintf(w, "Facet[%d] closure dofs = %v\n", f, dofs)
		}
	}
	switch e := el.(type) {
	case *element.CiarletElement:
		fmt.Fprintf(w, "%8.3e\t\t= Dual Matrix Condition\n", e.ConditionNumber())
	case *element.MixedElement:
		fmt.Fprintf(w, "%d\t\t\t= Sub-elements\n", e.NumSubElements())
		fmt.Fprintf(w, "%v\t\t= Sub-element Offsets\n", e.Offsets())
		for i, sub := range e.SubElements() {
			fmt.Fprintf(w, "SubElement[%d] = %s\n", i, sub.Name())
		}
	}
	ds := el.DualSet()
	if ds.Len() == 0 {
		fmt.Fprintln(w, "closed form basis, no dual functionals")
		return
	}
	for i, f := range ds.Functionals() {
		fmt.Fprintf(w, "L[%d] = %v\n", i, f)
	}
}
