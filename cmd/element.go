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
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notargets/gobasis/InputParameters"
	"github.com/notargets/gobasis/element"
	"github.com/notargets/gobasis/reference"
)

const exampleFile = `
########################################
Title: "Mixed Poisson"
SubElements:
  - Family: RT        # Lagrange, RT, BDM, Hermite or Serendipity
    Cell: tri         # interval, tri, tet or quad
    Degree: 2
  - Family: Lagrange
    Degree: 1
########################################
`

// addElementFlags registers the element description flags shared by the
// subcommands
func addElementFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("inputParametersFile", "I", "", "YAML file describing the element, overrides the element flags")
	cmd.Flags().StringP("family", "f", "Lagrange", "element family: Lagrange, RT, BDM, Hermite or Serendipity")
	cmd.Flags().StringP("cell", "c", "triangle", "reference cell: interval, triangle, tetrahedron or quadrilateral")
	cmd.Flags().IntP("degree", "n", 1, "element degree")
	cmd.Flags().String("variant", "", "dof variant for BDM: point or integral")
	cmd.Flags().Int("quadDegree", 0, "quadrature degree of the integral variant, 0 picks the default")
	cmd.Flags().String("solver", "lu", "dual matrix solver: lu or svd")
}

func elementParameters(cmd *cobra.Command) (ep *InputParameters.ElementParameters, err error) {
	var fileName string
	if fileName, err = cmd.Flags().GetString("inputParametersFile"); err != nil {
		return
	}
	ep = &InputParameters.ElementParameters{}
	if len(fileName) != 0 {
		var data []byte
		if data, err = os.ReadFile(fileName); err != nil {
			err = fmt.Errorf("reading input parameters: %w\nExample File:%s", err, exampleFile)
			return
		}
		err = ep.Parse(data)
		return
	}
	ep.Family, _ = cmd.Flags().GetString("family")
	ep.Cell, _ = cmd.Flags().GetString("cell")
	ep.Degree, _ = cmd.Flags().GetInt("degree")
	ep.Variant, _ = cmd.Flags().GetString("variant")
	ep.QuadratureDegree, _ = cmd.Flags().GetInt("quadDegree")
	ep.Solver, _ = cmd.Flags().GetString("solver")
	return
}

func buildElement(cmd *cobra.Command) (el element.Element, err error) {
	var ep *InputParameters.ElementParameters
	if ep, err = elementParameters(cmd); err != nil {
		return
	}
	if el, err = ep.Build(slog.Default()); err != nil {
		return
	}
	slog.Info("element built", "element", el.Name(), "cell", el.Cell().Shape(),
		"dim", el.SpaceDimension(), "valueShape", el.ValueShape())
	return
}

// parsePoints reads points written as "x,y;x,y"
func parsePoints(s string) (pts [][]float64, err error) {
	for _, ptStr := range strings.Split(s, ";") {
		ptStr = strings.TrimSpace(ptStr)
		if len(ptStr) == 0 {
			continue
		}
		var pt []float64
		for _, xStr := range strings.Split(ptStr, ",") {
			var x float64
			if x, err = strconv.ParseFloat(strings.TrimSpace(xStr), 64); err != nil {
				err = fmt.Errorf("point %q: %w", ptStr, err)
				return
			}
			pt = append(pt, x)
		}
		pts = append(pts, pt)
	}
	return
}

// parseEntity reads a sub-entity written as "dim,id"
func parseEntity(s string) (e *reference.Entity, err error) {
	if len(strings.TrimSpace(s)) == 0 {
		return
	}
	var vals [][]float64
	if vals, err = parsePoints(s); err != nil {
		return
	}
	if len(vals) != 1 || len(vals[0]) != 2 {
		err = fmt.Errorf("entity %q must be written as dim,id", s)
		return
	}
	e = &reference.Entity{Dim: int(vals[0][0]), ID: int(vals[0][1])}
	return
}
