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
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/hkcrc/riskcontour/InputParameters"
	"github.com/hkcrc/riskcontour/isosurface"
	"github.com/hkcrc/riskcontour/moment"
	"github.com/hkcrc/riskcontour/obstacle"
	"github.com/hkcrc/riskcontour/risk"
)

// ContourCmd represents the contour command
var ContourCmd = &cobra.Command{
	Use:   "contour",
	Short: "Compute the risk field and extract isosurfaces at each risk level",
	Long: `
Computes the normalized-variance risk field induced by the uncertain heart
obstacle and saves one geometry + normals file pair per risk level,

riskcontour contour -F input.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("contour called")
		rp := processContourInput(cmd)
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start(profile.CPUProfile).Stop()
		}
		nWorkers, _ := cmd.Flags().GetInt("nWorkers")
		if err := RunContour(rp, nWorkers); err != nil {
			fmt.Printf("contour failed: %s\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(ContourCmd)
	ContourCmd.Flags().StringP("inputFile", "F", "", "YAML file with run parameters, overridden by flags")
	ContourCmd.Flags().Float64("mean", InputParameters.Defaults().Mean, "mean of the uncertainty parameter")
	ContourCmd.Flags().Float64("variance", InputParameters.Defaults().Variance, "variance of the uncertainty parameter")
	ContourCmd.Flags().Float64("step", InputParameters.Defaults().GridStep, "lattice step on each axis")
	ContourCmd.Flags().StringP("outputDir", "o", InputParameters.Defaults().OutputDir, "directory for per-level geometry files")
	ContourCmd.Flags().IntP("nWorkers", "n", 0, "worker count for sampling/extraction, 0 = GOMAXPROCS")
	ContourCmd.Flags().String("stl", "", "also export the deterministic (w=0) surface as binary STL")
	ContourCmd.Flags().Bool("profile", false, "write a CPU profile for the run")
}

func processContourInput(cmd *cobra.Command) (rp *InputParameters.RiskParameters) {
	var (
		err error
	)
	rp = InputParameters.Defaults()
	if fileName, _ := cmd.Flags().GetString("inputFile"); fileName != "" {
		var data []byte
		if data, err = os.ReadFile(fileName); err != nil {
			fmt.Printf("unable to read input file %s: %s\n", fileName, err)
			os.Exit(1)
		}
		if err = rp.Parse(data); err != nil {
			fmt.Printf("unable to parse input file %s: %s\n", fileName, err)
			os.Exit(1)
		}
	}
	if cmd.Flags().Changed("mean") {
		rp.Mean, _ = cmd.Flags().GetFloat64("mean")
	}
	if cmd.Flags().Changed("variance") {
		rp.Variance, _ = cmd.Flags().GetFloat64("variance")
	}
	if cmd.Flags().Changed("step") {
		rp.GridStep, _ = cmd.Flags().GetFloat64("step")
	}
	if cmd.Flags().Changed("outputDir") {
		rp.OutputDir, _ = cmd.Flags().GetString("outputDir")
	}
	if cmd.Flags().Changed("stl") {
		rp.STLOutput, _ = cmd.Flags().GetString("stl")
	}
	if err = rp.Validate(); err != nil {
		fmt.Printf("invalid parameters: %s\n", err)
		os.Exit(1)
	}
	rp.Print()
	return
}

// RunContour executes the full pipeline: obstacle model, uncertainty
// moments, propagation, grid sampling, per-level extraction, persistence.
// Fatal stage errors abort; a persistence error skips that level only.
func RunContour(rp *InputParameters.RiskParameters, nWorkers int) (err error) {
	var (
		start = time.Now()
		model = obstacle.Heart()
	)
	fmt.Printf("obstacle degree in w = %d, %d terms\n",
		model.DegreeUncertain(), model.Polynomial().NumTerms())

	moments, err := moment.Gaussian{Mean: rp.Mean, Variance: rp.Variance}.
		Moments(2 * model.DegreeUncertain())
	if err != nil {
		return fmt.Errorf("moment generation: %w", err)
	}
	fmt.Printf("uncertainty moments = %v\n", moments)

	Mg, err := moment.Propagate(model, moments)
	if err != nil {
		return fmt.Errorf("moment propagation: %w", err)
	}
	field, err := risk.NewField(Mg)
	if err != nil {
		return fmt.Errorf("risk field: %w", err)
	}

	grid := isosurface.Grid{Min: rp.GridMin, Max: rp.GridMax, Step: rp.GridStep}
	vals, err := field.Sample(grid, nWorkers)
	if err != nil {
		return fmt.Errorf("grid evaluation: %w", err)
	}
	fmt.Printf("sampled %d^3 lattice in %8.3fs, %s\n",
		grid.N(), time.Since(start).Seconds(), risk.Summarize(vals))

	meshes := isosurface.ExtractLevels(vals, grid, rp.RiskLevels, nWorkers)
	var nSaved int
	for i, m := range meshes {
		if m.IsEmpty() {
			fmt.Printf("risk level %g: empty isosurface, nothing saved\n", rp.RiskLevels[i])
			continue
		}
		if werr := isosurface.WriteLevel(rp.OutputDir, i, m); werr != nil {
			fmt.Printf("risk level %g: %s\n", rp.RiskLevels[i], werr)
			continue
		}
		fmt.Printf("risk level %g: %d vertices, %d faces -> %s\n",
			rp.RiskLevels[i], len(m.Vertices), len(m.Faces),
			isosurface.GeometryFileName(rp.OutputDir, i))
		nSaved++
	}
	if nSaved == 0 {
		return fmt.Errorf("no risk level produced output")
	}

	if rp.STLOutput != "" {
		if err = writeDeterministicSTL(rp, model, grid, nWorkers); err != nil {
			return
		}
	}
	fmt.Printf("done in %8.3fs\n", time.Since(start).Seconds())
	return nil
}

// writeDeterministicSTL extracts the zero level of the w=0 obstacle surface,
// the mesh the original generator shipped to the simulator.
func writeDeterministicSTL(rp *InputParameters.RiskParameters,
	model obstacle.Model, grid isosurface.Grid, nWorkers int) (err error) {
	ev, err := model.Deterministic().Compile()
	if err != nil {
		return fmt.Errorf("deterministic surface: %w", err)
	}
	var (
		n    = grid.N()
		vals = make([]float64, grid.NumSamples())
	)
	for ix := 0; ix < n; ix++ {
		for iy := 0; iy < n; iy++ {
			for iz := 0; iz < n; iz++ {
				vals[grid.Index(ix, iy, iz)] = ev.At(grid.Coord(ix), grid.Coord(iy), grid.Coord(iz))
			}
		}
	}
	m := isosurface.Extract(vals, grid, 0)
	if m.IsEmpty() {
		return fmt.Errorf("deterministic surface: empty mesh")
	}
	if err = isosurface.WriteSTL(rp.STLOutput, m); err != nil {
		return fmt.Errorf("deterministic surface: %w", err)
	}
	fmt.Printf("deterministic surface: %d faces -> %s\n", len(m.Faces), rp.STLOutput)
	return nil
}
