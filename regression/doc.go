// Package regression provides snapshot size estimation through regression
// analysis of encoded assignment blobs.
//
// Deciding how many sample rows to pack into one assignment blob is a
// trade-off: the 32-byte header and the category names payload are paid per
// blob, and compression works better on longer mask runs, so small blobs cost
// more bytes per row. This package measures that curve on real data and fits
// it, analyzing the relationship between rows-per-blob (RPB) and
// bytes-per-row (BPR) to derive mathematical formulas for snapshot size
// estimation.
//
// # Key Features
//
//   - **Multiple Model Types**: Supports hyperbolic, logarithmic, power,
//     exponential and polynomial regression models
//   - **Automatic Model Selection**: Chooses the best-fit model based on R² coefficient
//   - **Production-Ready**: Measures with the same encoder and compression the
//     stored snapshots use
//   - **Flexible Analysis**: Supports both aggregated and per-group analysis
//   - **Precise Sampling**: Automatic chunk size ladder based on input data size
//
// # Usage Patterns
//
// ## Basic Analysis
//
// Analyze one set of assignment rows to get a single best-fit model:
//
//	result, err := regression.Analyze(names, masks)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Use the best-fit estimator for predictions
//	estimator := result.BestFit.Estimator
//	bpr := estimator.Estimate(100.0) // Estimate BPR for 100 RPB
//
// ## Per-Group Analysis
//
// Analyze each row group separately for drift detection:
//
//	results, err := regression.AnalyzeEach(names, groups)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for i, result := range results {
//	    fmt.Printf("Group %d: %s (R²=%.4f)\n", i, result.BestFit.Type, result.BestFit.RSquared)
//	}
//
// ## Model Comparison
//
// Compare all candidate models to understand their performance:
//
//	for _, model := range result.AllModels {
//	    fmt.Printf("%s: R²=%.4f, Formula=%s\n", model.Type, model.RSquared, model.Formula)
//	}
//
// # Model Types
//
// The package supports five regression models:
//
//   - **Hyperbolic**: BPR = a + b / RPB (typically best, fixed overhead amortized over rows)
//   - **Logarithmic**: BPR = a + b * ln(RPB)
//   - **Power**: BPR = a * RPB^b
//   - **Exponential**: BPR = a * e^(b * RPB)
//   - **Polynomial**: BPR = a + b*RPB + c*RPB²
//
// The best-fit model is automatically selected based on the highest R² coefficient.
//
// # Measurement Methodology
//
// The analysis re-encodes the provided rows rather than inspecting existing
// blobs, so the measured sizes are exact:
//
//  1. Choose a ladder of rows-per-blob chunk sizes (automatic, or WithChunkRows)
//  2. For each size, split the rows into chunks and encode every chunk into
//     its own assignment blob
//  3. Record RPB and BPR = total encoded bytes / total rows
//  4. Apply least-squares regression to fit each model type
//  5. Select the model with the highest R² as the best fit
//
// Match WithMaskCompression to the compression the stored snapshots use;
// measuring uncompressed and serving Zstandard-compressed blobs would fit the
// wrong curve.
//
// # Production Use Cases
//
//   - **Storage Planning**: Predict storage costs for production workloads
//   - **Configuration Tuning**: Choose optimal snapshot sizes based on historical data
//   - **Cost Optimization**: Balance write frequency vs storage efficiency
//   - **Capacity Planning**: Estimate infrastructure requirements
//   - **Drift Detection**: Monitor formula changes over time to detect membership pattern shifts
//
// # Example: Continuous Improvement
//
// Use this package in a feedback loop to keep snapshot size estimation accurate:
//
//	// 1. Collect production assignment rows
//	names, masks := collectProductionAssignments()
//
//	// 2. Analyze to get updated formula
//	result, err := regression.Analyze(names, masks,
//	    regression.WithMaskCompression(format.CompressionZstd))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// 3. Update your estimation logic with new coefficients
//	estimator := result.BestFit.Estimator
//	newFormula := result.BestFit.Formula
//	fmt.Printf("Updated formula: %s (R²=%.4f)\n", newFormula, result.BestFit.RSquared)
//
//	// 4. Use for future predictions
//	predictedBPR := estimator.Estimate(expectedRPB)
//	estimatedBlobSize := predictedBPR * expectedRPB
//
// This enables the estimation to become more accurate over time as more
// production data is collected.
package regression
