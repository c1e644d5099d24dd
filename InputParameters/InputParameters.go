package InputParameters

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/gobasis/element"
	"github.com/notargets/gobasis/families"
	"github.com/notargets/gobasis/functional"
	"github.com/notargets/gobasis/reference"
)

// Parameters obtained from the YAML element description file
type ElementParameters struct {
	Title            string              `yaml:"Title"`
	Family           string              `yaml:"Family"`
	Cell             string              `yaml:"Cell"`
	Degree           int                 `yaml:"Degree"`
	Variant          string              `yaml:"Variant"`          // point or integral, point when empty
	QuadratureDegree int                 `yaml:"QuadratureDegree"` // integral variant only, 0 picks the default
	Solver           string              `yaml:"Solver"`           // lu or svd
	SVDTolerance     float64             `yaml:"SVDTolerance"`
	SubElements      []ElementParameters `yaml:"SubElements"` // A mixed element when present
}

func (ep *ElementParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ep)
}

func (ep *ElementParameters) Print() {
	ep.print("")
}

func (ep *ElementParameters) print(indent string) {
	if len(ep.Title) != 0 {
		fmt.Printf("%s\"%s\"\t\t= Title\n", indent, ep.Title)
	}
	if len(ep.SubElements) != 0 {
		fmt.Printf("%s[%s]\t\t= Mixed Cell\n", indent, ep.Cell)
		for i := range ep.SubElements {
			fmt.Printf("%sSubElement[%d]\n", indent, i)
			ep.SubElements[i].print(indent + "\t")
		}
		return
	}
	fmt.Printf("%s[%s]\t\t= Family\n", indent, ep.Family)
	fmt.Printf("%s[%s]\t\t= Cell\n", indent, ep.Cell)
	fmt.Printf("%s[%d]\t\t\t= Degree\n", indent, ep.Degree)
	if len(ep.Variant) != 0 {
		fmt.Printf("%s[%s]\t\t= Variant\n", indent, ep.Variant)
	}
	if ep.QuadratureDegree != 0 {
		fmt.Printf("%s[%d]\t\t\t= Quadrature Degree\n", indent, ep.QuadratureDegree)
	}
}

func (ep *ElementParameters) DofVariant() (functional.Variant, error) {
	if len(ep.Variant) == 0 {
		return functional.PointVariant(), nil
	}
	return functional.NewVariant(ep.Variant, ep.QuadratureDegree)
}

func (ep *ElementParameters) solver() (s element.Solver, err error) {
	switch strings.ToLower(ep.Solver) {
	case "", "lu":
		s = element.LUSolver{}
	case "svd":
		tol := ep.SVDTolerance
		if tol == 0 {
			tol = 1e-14
		}
		s = element.SVDSolver{Tol: tol}
	default:
		err = fmt.Errorf("unknown solver %q, choose lu or svd", ep.Solver)
	}
	return
}

// Build constructs the described element. Sub-elements share one cell,
// named by the parent or by the first sub-element that names one.
func (ep *ElementParameters) Build(logger *slog.Logger) (el element.Element, err error) {
	var (
		label = ep.Cell
		shape reference.Shape
	)
	if len(label) == 0 {
		for _, sub := range ep.SubElements {
			if len(sub.Cell) != 0 {
				label = sub.Cell
				break
			}
		}
	}
	if shape, err = reference.NewShape(label); err != nil {
		return
	}
	return ep.buildOn(reference.NewCell(shape), logger)
}

func (ep *ElementParameters) buildOn(cell *reference.Cell, logger *slog.Logger) (el element.Element, err error) {
	if len(ep.Cell) != 0 {
		var shape reference.Shape
		if shape, err = reference.NewShape(ep.Cell); err != nil {
			return
		}
		if shape != cell.Shape() {
			err = fmt.Errorf("%w: %v inside a %v mixed element", element.ErrCellMismatch, shape, cell.Shape())
			return
		}
	}
	if len(ep.SubElements) != 0 {
		subs := make([]element.Element, len(ep.SubElements))
		for i := range ep.SubElements {
			if subs[i], err = ep.SubElements[i].buildOn(cell, logger); err != nil {
				err = fmt.Errorf("sub-element %d: %w", i, err)
				return
			}
		}
		var me *element.MixedElement
		if me, err = element.NewMixedElement(subs...); err != nil {
			return
		}
		return me, nil
	}
	var (
		variant functional.Variant
		solver  element.Solver
	)
	if variant, err = ep.DofVariant(); err != nil {
		return
	}
	if solver, err = ep.solver(); err != nil {
		return
	}
	opts := []element.Option{element.WithSolver(solver)}
	if logger != nil {
		opts = append(opts, element.WithLogger(logger))
	}
	return families.New(ep.Family, cell, ep.Degree, variant, opts...)
}
