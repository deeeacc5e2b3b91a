package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type RiskParameters struct {
	Title      string    `yaml:"Title"`
	Mean       float64   `yaml:"Mean"`     // mean of the uncertainty parameter
	Variance   float64   `yaml:"Variance"` // variance of the uncertainty parameter
	GridMin    float64   `yaml:"GridMin"`
	GridMax    float64   `yaml:"GridMax"`
	GridStep   float64   `yaml:"GridStep"`
	RiskLevels []float64 `yaml:"RiskLevels"`
	OutputDir  string    `yaml:"OutputDir"`
	STLOutput  string    `yaml:"STLOutput"` // optional deterministic surface export
}

// Defaults returns the reference run configuration.
func Defaults() *RiskParameters {
	return &RiskParameters{
		Title:      "heart obstacle risk contour",
		Mean:       0.05,
		Variance:   0.01,
		GridMin:    -1.5,
		GridMax:    1.5,
		GridStep:   0.02,
		RiskLevels: []float64{0.01, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9},
		OutputDir:  "contour_data",
	}
}

func (rp *RiskParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, rp)
}

func (rp *RiskParameters) Validate() error {
	switch {
	case rp.Variance <= 0:
		return fmt.Errorf("Variance must be positive, got %g", rp.Variance)
	case rp.GridStep <= 0:
		return fmt.Errorf("GridStep must be positive, got %g", rp.GridStep)
	case rp.GridMax <= rp.GridMin:
		return fmt.Errorf("GridMax %g must exceed GridMin %g", rp.GridMax, rp.GridMin)
	case len(rp.RiskLevels) == 0:
		return fmt.Errorf("RiskLevels must not be empty")
	}
	for _, d := range rp.RiskLevels {
		if d <= 0 || d >= 1 {
			return fmt.Errorf("risk level %g outside (0,1)", d)
		}
	}
	return nil
}

func (rp *RiskParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", rp.Title)
	fmt.Printf("%8.5f\t\t= Mean\n", rp.Mean)
	fmt.Printf("%8.5f\t\t= Variance\n", rp.Variance)
	fmt.Printf("[%g,%g] @ %g\t= Grid\n", rp.GridMin, rp.GridMax, rp.GridStep)
	fmt.Printf("%v\t= Risk Levels\n", rp.RiskLevels)
	fmt.Printf("[%s]\t\t= Output Directory\n", rp.OutputDir)
	if rp.STLOutput != "" {
		fmt.Printf("[%s]\t\t= STL Output\n", rp.STLOutput)
	}
}
