package regression

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/upsetdata/bitmask"
)

// Analyze measures how assignment snapshot size scales with the number of
// rows per blob and returns the best-fit model.
//
// The rows are re-encoded at several rows-per-blob (RPB) chunk sizes, each
// size yields one bytes-per-row (BPR) sample, and five regression models are
// fitted to the resulting curve. The model with the highest R² becomes the
// best fit.
//
// Parameters:
//   - names: Ordered category names, one per mask bit
//   - masks: One membership mask per sample row, all of width len(names)
//   - opts: Optional configuration (WithMaskCompression, WithChunkRows)
//
// Returns:
//   - *Result: Analysis result with best-fit model and all candidate models
//   - error: Analysis error if any
//
// Example:
//
//	result, err := regression.Analyze(names, masks,
//	    regression.WithMaskCompression(format.CompressionZstd))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	bpr := result.BestFit.Estimator.Estimate(100.0) // Estimate BPR at 100 RPB
//	blobBytes := bpr * 100.0
func Analyze(names []string, masks []bitmask.Mask, opts ...AnalyzeOption) (*Result, error) {
	cfg, err := newAnalyzeConfig(opts...)
	if err != nil {
		return nil, err
	}

	measured, err := chunkAndMeasure(names, masks, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to measure snapshot sizes: %w", err)
	}

	result, err := performRegression(measured.RPB, measured.BPR)
	if err != nil {
		return nil, err
	}
	result.ChunkRows = measured.ChunkRows

	return result, nil
}

// AnalyzeEach analyzes each row group separately and returns per-group models.
//
// Groups typically hold the same categories observed over different periods
// or cohorts; fitting them individually exposes formula drift between groups.
//
// Parameters:
//   - names: Ordered category names shared by all groups
//   - groups: Row groups, each a slice of membership masks
//   - opts: Optional configuration (WithMaskCompression, WithChunkRows)
//
// Returns:
//   - []*Result: Slice of analysis results, one per group
//   - error: Analysis error if any
//
// Example:
//
//	results, err := regression.AnalyzeEach(names, [][]bitmask.Mask{jan, feb})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i, result := range results {
//	    fmt.Printf("Group %d: %s\n", i, result.BestFit)
//	}
func AnalyzeEach(names []string, groups [][]bitmask.Mask, opts ...AnalyzeOption) ([]*Result, error) {
	if len(groups) == 0 {
		return nil, errors.New("no row groups provided")
	}

	cfg, err := newAnalyzeConfig(opts...)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, len(groups))

	for i, masks := range groups {
		measured, measureErr := chunkAndMeasure(names, masks, cfg)
		if measureErr != nil {
			return nil, fmt.Errorf("failed to measure group %d: %w", i, measureErr)
		}

		result, fitErr := performRegression(measured.RPB, measured.BPR)
		if fitErr != nil {
			return nil, fmt.Errorf("failed to analyze group %d: %w", i, fitErr)
		}
		result.ChunkRows = measured.ChunkRows

		results[i] = result
	}

	return results, nil
}

// performRegression performs regression analysis on the given data points.
//
// This function fits five different regression models to the provided
// RPB-BPR data and selects the best-fit model based on the highest R² value.
// The function returns both the best model and all candidate models for
// comparison.
//
// Parameters:
//   - rpbValues: Rows per blob values (independent variable)
//   - bprValues: Bytes per row values (dependent variable)
//
// Returns:
//   - *Result: Analysis result containing best-fit model and all candidates
//   - error: Error if regression analysis fails
//
// The function fits five models:
//   - Hyperbolic: BPR = a + b / RPB
//   - Logarithmic: BPR = a + b * ln(RPB)
//   - Power: BPR = a * RPB^b
//   - Exponential: BPR = a * e^(b * RPB)
//   - Polynomial: BPR = a + b*RPB + c*RPB²
//
// Models are ranked by R² (coefficient of determination) with the highest
// R² value selected as the best fit.
func performRegression(rpbValues, bprValues []float64) (*Result, error) {
	if len(rpbValues) != len(bprValues) {
		return nil, fmt.Errorf("mismatched data lengths: %d RPB vs %d BPR", len(rpbValues), len(bprValues))
	}

	if len(rpbValues) < 2 {
		return nil, fmt.Errorf("insufficient data points for regression: %d", len(rpbValues))
	}

	// Fit all five models
	models := []*Model{
		fitHyperbolic(rpbValues, bprValues),
		fitLogarithmic(rpbValues, bprValues),
		fitPower(rpbValues, bprValues),
		fitExponential(rpbValues, bprValues),
		fitPolynomial(rpbValues, bprValues),
	}

	// Sort models by R² (best first)
	slices.SortFunc(models, func(a, b *Model) int {
		if a.RSquared > b.RSquared {
			return -1
		}
		if a.RSquared < b.RSquared {
			return 1
		}

		return 0
	})

	return &Result{
		BestFit:   models[0],
		AllModels: models,
	}, nil
}

// fitHyperbolic fits the hyperbolic model: BPR = a + b / RPB
//
// This function performs linear regression on the transformed data where
// X' = 1/RPB and Y = BPR, fitting the model BPR = a + b * (1/RPB).
// The hyperbolic model matches fixed-overhead amortization closely: the
// header and names payload contribute b bytes spread over RPB rows on top of
// a steady per-row cost a.
//
// Parameters:
//   - x: RPB values (rows per blob)
//   - y: BPR values (bytes per row)
//
// Returns:
//   - *Model: Fitted hyperbolic model with coefficients, R², RMSE, and estimator
//
// The model uses least squares regression on the transformed variables:
//   - X' = 1/x (inverse of RPB)
//   - Y = y (BPR values)
//   - Fits: Y = a + b*X'
func fitHyperbolic(x, y []float64) *Model {
	n := len(x)
	if n == 0 {
		return &Model{Type: ModelTypeHyperbolic, RSquared: 0, RMSE: 0, Formula: "BPR = 0 + 0 / RPB"}
	}

	// Transform: X' = 1/x, fit y = a + b*X'
	var sumX, sumY, sumXY, sumX2 float64
	for i := range n {
		xi := 1.0 / x[i]
		yi := y[i]
		sumX += xi
		sumY += yi
		sumXY += xi * yi
		sumX2 += xi * xi
	}

	meanX := sumX / float64(n)
	meanY := sumY / float64(n)
	b := (sumXY - float64(n)*meanX*meanY) / (sumX2 - float64(n)*meanX*meanX)
	a := meanY - b*meanX

	// Calculate R² and RMSE
	predicted := make([]float64, n)
	for i := range n {
		predicted[i] = a + b/x[i]
	}
	r2 := calculateRSquared(y, predicted)
	rmse := calculateRMSE(y, predicted)

	formula := fmt.Sprintf("BPR = %.2f + %.2f / RPB", a, b)

	return &Model{
		Type:         ModelTypeHyperbolic,
		Coefficients: []float64{a, b},
		RSquared:     r2,
		RMSE:         rmse,
		Formula:      formula,
		Estimator:    NewHyperbolicEstimator(a, b),
	}
}

// fitLogarithmic fits the logarithmic model: BPR = a + b * ln(RPB)
//
// This function performs linear regression on the transformed data where
// X' = ln(RPB) and Y = BPR, fitting the model BPR = a + b * ln(RPB).
// The logarithmic model captures diminishing returns in storage efficiency
// as the number of rows per blob increases.
//
// Parameters:
//   - x: RPB values (rows per blob)
//   - y: BPR values (bytes per row)
//
// Returns:
//   - *Model: Fitted logarithmic model with coefficients, R², RMSE, and estimator
//
// The model uses least squares regression on the transformed variables:
//   - X' = ln(x) (natural logarithm of RPB)
//   - Y = y (BPR values)
//   - Fits: Y = a + b*X'
func fitLogarithmic(x, y []float64) *Model {
	n := len(x)
	if n == 0 {
		return &Model{Type: ModelTypeLogarithmic, RSquared: 0, RMSE: 0, Formula: "BPR = 0 + 0 * ln(RPB)"}
	}

	// Transform: X' = ln(x), fit y = a + b*X'
	var sumX, sumY, sumXY, sumX2 float64
	for i := range n {
		xi := math.Log(x[i])
		yi := y[i]
		sumX += xi
		sumY += yi
		sumXY += xi * yi
		sumX2 += xi * xi
	}

	// Least squares solution
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)
	b := (sumXY - float64(n)*meanX*meanY) / (sumX2 - float64(n)*meanX*meanX)
	a := meanY - b*meanX

	// Calculate R² and RMSE
	predicted := make([]float64, n)
	for i := range n {
		predicted[i] = a + b*math.Log(x[i])
	}
	r2 := calculateRSquared(y, predicted)
	rmse := calculateRMSE(y, predicted)

	formula := fmt.Sprintf("BPR = %.2f + %.2f * ln(RPB)", a, b)

	return &Model{
		Type:         ModelTypeLogarithmic,
		Coefficients: []float64{a, b},
		RSquared:     r2,
		RMSE:         rmse,
		Formula:      formula,
		Estimator:    NewLogarithmicEstimator(a, b),
	}
}

// fitPower fits the power model: BPR = a * RPB^b
//
// This function performs linear regression on the log-transformed data where
// X' = ln(RPB) and Y' = ln(BPR), fitting the model ln(BPR) = ln(a) + b * ln(RPB).
// The power model captures scale-free relationships between storage
// efficiency and the number of rows per blob.
//
// Parameters:
//   - x: RPB values (rows per blob)
//   - y: BPR values (bytes per row)
//
// Returns:
//   - *Model: Fitted power model with coefficients, R², RMSE, and estimator
//
// The model uses least squares regression on the log-transformed variables:
//   - X' = ln(x) (natural logarithm of RPB)
//   - Y' = ln(y) (natural logarithm of BPR)
//   - Fits: Y' = ln(a) + b*X'
//   - Transforms back to: BPR = a * RPB^b
func fitPower(x, y []float64) *Model {
	n := len(x)
	if n == 0 {
		return &Model{Type: ModelTypePower, RSquared: 0, RMSE: 0, Formula: "BPR = 0 * RPB^0"}
	}

	// Transform: ln(y) = ln(a) + b*ln(x)
	var sumX, sumY, sumXY, sumX2 float64
	for i := range n {
		xi := math.Log(x[i])
		yi := math.Log(y[i])
		sumX += xi
		sumY += yi
		sumXY += xi * yi
		sumX2 += xi * xi
	}

	meanX := sumX / float64(n)
	meanY := sumY / float64(n)
	b := (sumXY - float64(n)*meanX*meanY) / (sumX2 - float64(n)*meanX*meanX)
	logA := meanY - b*meanX
	a := math.Exp(logA)

	// Calculate R² and RMSE
	predicted := make([]float64, n)
	for i := range n {
		predicted[i] = a * math.Pow(x[i], b)
	}
	r2 := calculateRSquared(y, predicted)
	rmse := calculateRMSE(y, predicted)

	formula := fmt.Sprintf("BPR = %.2f * RPB^%.3f", a, b)

	return &Model{
		Type:         ModelTypePower,
		Coefficients: []float64{a, b},
		RSquared:     r2,
		RMSE:         rmse,
		Formula:      formula,
		Estimator:    NewPowerEstimator(a, b),
	}
}

// fitExponential fits the exponential model: BPR = a * e^(b * RPB)
//
// This function performs linear regression on the log-transformed data where
// X' = RPB and Y' = ln(BPR), fitting the model ln(BPR) = ln(a) + b * RPB.
// The exponential model captures exponential growth or decay in storage
// efficiency as the number of rows per blob changes.
//
// Parameters:
//   - x: RPB values (rows per blob)
//   - y: BPR values (bytes per row)
//
// Returns:
//   - *Model: Fitted exponential model with coefficients, R², RMSE, and estimator
//
// The model uses least squares regression on the log-transformed variables:
//   - X' = x (RPB values)
//   - Y' = ln(y) (natural logarithm of BPR)
//   - Fits: Y' = ln(a) + b*X'
//   - Transforms back to: BPR = a * e^(b * RPB)
func fitExponential(x, y []float64) *Model {
	n := len(x)
	if n == 0 {
		return &Model{Type: ModelTypeExponential, RSquared: 0, RMSE: 0, Formula: "BPR = 0 * e^(0 * RPB)"}
	}

	// Transform: ln(y) = ln(a) + b*x
	var sumX, sumY, sumXY, sumX2 float64
	for i := range n {
		xi := x[i]
		yi := math.Log(y[i])
		sumX += xi
		sumY += yi
		sumXY += xi * yi
		sumX2 += xi * xi
	}

	meanX := sumX / float64(n)
	meanY := sumY / float64(n)
	b := (sumXY - float64(n)*meanX*meanY) / (sumX2 - float64(n)*meanX*meanX)
	logA := meanY - b*meanX
	a := math.Exp(logA)

	// Calculate R² and RMSE
	predicted := make([]float64, n)
	for i := range n {
		predicted[i] = a * math.Exp(b*x[i])
	}
	r2 := calculateRSquared(y, predicted)
	rmse := calculateRMSE(y, predicted)

	formula := fmt.Sprintf("BPR = %.2f * e^(%.3f * RPB)", a, b)

	return &Model{
		Type:         ModelTypeExponential,
		Coefficients: []float64{a, b},
		RSquared:     r2,
		RMSE:         rmse,
		Formula:      formula,
		Estimator:    NewExponentialEstimator(a, b),
	}
}

// fitPolynomial fits the polynomial model: BPR = a + b*RPB + c*RPB²
//
// This function performs polynomial regression using the normal equations
// to fit a quadratic polynomial. The polynomial model captures non-linear
// relationships with curvature between storage efficiency and rows per blob.
//
// Parameters:
//   - x: RPB values (rows per blob)
//   - y: BPR values (bytes per row)
//
// Returns:
//   - *Model: Fitted polynomial model with coefficients, R², RMSE, and estimator
//
// The model uses least squares regression on the polynomial variables:
//   - X₁ = x (RPB values)
//   - X₂ = x² (squared RPB values)
//   - Y = y (BPR values)
//   - Fits: Y = a + b*X₁ + c*X₂
func fitPolynomial(x, y []float64) *Model {
	n := len(x)
	if n == 0 {
		return &Model{
			Type:         ModelTypePolynomial,
			Coefficients: []float64{0, 0, 0},
			RSquared:     0,
			RMSE:         0,
			Formula:      "BPR = 0 + 0*RPB + 0*RPB²",
			Estimator:    NewPolynomialEstimator(0, 0, 0),
		}
	}

	// For polynomial regression, we need at least 3 points for a quadratic fit
	if n < 3 {
		// Fall back to linear regression if insufficient data
		return fitLinear(x, y)
	}

	// Build the normal equations for polynomial regression
	// We solve: [n    Σx   Σx²] [a]   [Σy]
	//          [Σx   Σx²  Σx³] [b] = [Σxy]
	//          [Σx²  Σx³  Σx⁴] [c]   [Σx²y]
	var sumX, sumX2, sumX3, sumX4, sumY, sumXY, sumX2Y float64
	for i := range n {
		xi := x[i]
		xi2 := xi * xi
		xi3 := xi2 * xi
		xi4 := xi3 * xi
		yi := y[i]

		sumX += xi
		sumX2 += xi2
		sumX3 += xi3
		sumX4 += xi4
		sumY += yi
		sumXY += xi * yi
		sumX2Y += xi2 * yi
	}

	// Solve the 3x3 system using Cramer's rule
	// Matrix: [n    sumX  sumX2]
	//         [sumX sumX2 sumX3]
	//         [sumX2 sumX3 sumX4]
	det := float64(n)*sumX2*sumX4 + sumX*sumX3*sumX2 + sumX2*sumX*sumX3 -
		(sumX2*sumX2*float64(n) + sumX*sumX*sumX4 + sumX3*sumX3*sumX2)

	if math.Abs(det) < 1e-10 {
		// Matrix is singular, fall back to linear regression
		return fitLinear(x, y)
	}

	// Calculate coefficients using Cramer's rule
	detA := sumY*sumX2*sumX4 + sumXY*sumX3*sumX2 + sumX2Y*sumX*sumX3 -
		(sumX2Y*sumX2*sumY + sumXY*sumX*sumX4 + sumY*sumX3*sumX3)
	a := detA / det

	detB := float64(n)*sumXY*sumX4 + sumY*sumX3*sumX2 + sumX2*sumX2Y*sumX -
		(sumX2*sumXY*float64(n) + sumY*sumX*sumX4 + sumX2Y*sumX3*sumX2)
	b := detB / det

	detC := float64(n)*sumX2*sumX2Y + sumX*sumXY*sumX2 + sumY*sumX*sumX3 -
		(sumX2*sumX2*sumY + sumX*sumXY*sumX2 + sumY*sumX3*sumX2)
	c := detC / det

	// Optimized R² and RMSE calculation in single pass
	r2, rmse := calculateStatsOptimized(x, y, a, b, c)

	formula := fmt.Sprintf("BPR = %.2f + %.2f*RPB + %.2f*RPB²", a, b, c)

	return &Model{
		Type:         ModelTypePolynomial,
		Coefficients: []float64{a, b, c},
		RSquared:     r2,
		RMSE:         rmse,
		Formula:      formula,
		Estimator:    NewPolynomialEstimator(a, b, c),
	}
}

// fitLinear performs linear regression as a fallback for polynomial regression.
// This is used when there's insufficient data for polynomial fitting.
func fitLinear(x, y []float64) *Model {
	n := len(x)
	if n == 0 {
		return &Model{Type: ModelTypePolynomial, RSquared: 0, RMSE: 0, Formula: "BPR = 0 + 0*RPB"}
	}

	// Simple linear regression: y = a + b*x
	var sumX, sumY, sumXY, sumX2 float64
	for i := range n {
		xi := x[i]
		yi := y[i]
		sumX += xi
		sumY += yi
		sumXY += xi * yi
		sumX2 += xi * xi
	}

	meanX := sumX / float64(n)
	meanY := sumY / float64(n)
	b := (sumXY - float64(n)*meanX*meanY) / (sumX2 - float64(n)*meanX*meanX)
	a := meanY - b*meanX

	// Calculate R² and RMSE
	predicted := make([]float64, n)
	for i := range n {
		predicted[i] = a + b*x[i]
	}
	r2 := calculateRSquared(y, predicted)
	rmse := calculateRMSE(y, predicted)

	formula := fmt.Sprintf("BPR = %.2f + %.2f*RPB", a, b)

	return &Model{
		Type:         ModelTypePolynomial,
		Coefficients: []float64{a, b, 0}, // c=0 for linear
		RSquared:     r2,
		RMSE:         rmse,
		Formula:      formula,
		Estimator:    NewPolynomialEstimator(a, b, 0),
	}
}

// calculateRSquared calculates the coefficient of determination (R²).
//
// R² measures the proportion of variance in the dependent variable (BPR)
// that is predictable from the independent variable (RPB). Values range from
// 0 to 1, where 1 indicates perfect fit and 0 indicates no linear relationship.
//
// Formula: R² = 1 - (SS_res / SS_tot)
//   - SS_res: Sum of squares of residuals (observed - predicted)²
//   - SS_tot: Total sum of squares (observed - mean)²
//
// Parameters:
//   - observed: Actual BPR values from the data
//   - predicted: BPR values predicted by the model
//
// Returns:
//   - float64: R² value between 0 and 1 (higher is better)
func calculateRSquared(observed, predicted []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	mean := calculateMean(observed)
	ssTot := 0.0 // Total sum of squares
	ssRes := 0.0 // Residual sum of squares

	for i := range observed {
		ssTot += (observed[i] - mean) * (observed[i] - mean)
		ssRes += (observed[i] - predicted[i]) * (observed[i] - predicted[i])
	}

	if ssTot == 0 {
		return 0
	}

	return 1.0 - (ssRes / ssTot)
}

// calculateRMSE calculates the root mean square error.
//
// RMSE measures the standard deviation of the residuals (prediction errors).
// It provides an estimate of how far the predicted values deviate from the
// observed values on average. Lower RMSE values indicate better model fit.
//
// Formula: RMSE = √(Σ(observed - predicted)² / n)
//
// Parameters:
//   - observed: Actual BPR values from the data
//   - predicted: BPR values predicted by the model
//
// Returns:
//   - float64: RMSE value (lower is better, same units as BPR)
func calculateRMSE(observed, predicted []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	sumSq := 0.0
	for i := range observed {
		diff := observed[i] - predicted[i]
		sumSq += diff * diff
	}

	return math.Sqrt(sumSq / float64(len(observed)))
}

// calculateMean calculates the arithmetic mean.
//
// This function computes the average value of a slice of floating-point numbers.
// It is used internally by other statistical functions for calculating R².
//
// Parameters:
//   - values: Slice of floating-point numbers
//
// Returns:
//   - float64: Arithmetic mean of the values (0 if slice is empty)
func calculateMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// calculateStatsOptimized calculates R² and RMSE in a single optimized pass.
//
// This function performs both R² and RMSE calculations in a single pass over the data,
// reducing memory allocations and improving performance for polynomial regression.
//
// Parameters:
//   - x: Input values (RPB)
//   - y: Observed values (BPR)
//   - a, b, c: Polynomial coefficients
//
// Returns:
//   - r2: Coefficient of determination
//   - rmse: Root mean square error
func calculateStatsOptimized(x, y []float64, a, b, c float64) (r2, rmse float64) {
	n := len(x)
	if n == 0 {
		return 0, 0
	}

	// Calculate mean of observed values
	meanY := 0.0
	for _, yi := range y {
		meanY += yi
	}
	meanY /= float64(n)

	// Single-pass calculation of R² and RMSE
	ssTot := 0.0 // Total sum of squares
	ssRes := 0.0 // Residual sum of squares

	for i := range n {
		xi := x[i]
		yi := y[i]

		// Calculate predicted value: a + b*x + c*x²
		predicted := a + b*xi + c*xi*xi

		// Accumulate for R²
		ssTot += (yi - meanY) * (yi - meanY)
		residual := yi - predicted
		ssRes += residual * residual
	}

	// Calculate R²
	if ssTot == 0 {
		r2 = 0
	} else {
		r2 = 1.0 - (ssRes / ssTot)
	}

	// Calculate RMSE
	rmse = math.Sqrt(ssRes / float64(n))

	return r2, rmse
}
