package perceptron

// TruthRow is one row of a truth table: inputs and the expected output.
type TruthRow struct {
	Inputs []float64
	Want   int
}

// CheckResult pairs a truth table row with the perceptron's answer.
type CheckResult struct {
	Row TruthRow
	Got int
}

// Pass reports whether the perceptron matched the expected output.
func (r CheckResult) Pass() bool {
	return r.Got == r.Row.Want
}

// Check evaluates a perceptron against every row of a truth table.
func Check(p *Perceptron, table []TruthRow) []CheckResult {
	results := make([]CheckResult, len(table))
	for i, row := range table {
		results[i] = CheckResult{Row: row, Got: p.Forward(row.Inputs)}
	}
	return results
}

// AllPass reports whether every row passed.
func AllPass(results []CheckResult) bool {
	for _, r := range results {
		if !r.Pass() {
			return false
		}
	}
	return true
}

// ANDTable is the two-input AND truth table.
func ANDTable() []TruthRow {
	return []TruthRow{
		{Inputs: []float64{0, 0}, Want: 0},
		{Inputs: []float64{0, 1}, Want: 0},
		{Inputs: []float64{1, 0}, Want: 0},
		{Inputs: []float64{1, 1}, Want: 1},
	}
}

// ORTable is the two-input OR truth table.
func ORTable() []TruthRow {
	return []TruthRow{
		{Inputs: []float64{0, 0}, Want: 0},
		{Inputs: []float64{0, 1}, Want: 1},
		{Inputs: []float64{1, 0}, Want: 1},
		{Inputs: []float64{1, 1}, Want: 1},
	}
}

// NOTTable is the single-input NOT truth table.
func NOTTable() []TruthRow {
	return []TruthRow{
		{Inputs: []float64{0}, Want: 1},
		{Inputs: []float64{1}, Want: 0},
	}
}

// XORTable is the two-input XOR truth table.
func XORTable() []TruthRow {
	return []TruthRow{
		{Inputs: []float64{0, 0}, Want: 0},
		{Inputs: []float64{0, 1}, Want: 1},
		{Inputs: []float64{1, 0}, Want: 1},
		{Inputs: []float64{1, 1}, Want: 0},
	}
}
