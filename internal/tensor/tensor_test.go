package tensor

import (
	"math"
	"testing"
)

// fakeBackend satisfies Backend for tests that never execute ops.
type fakeBackend struct{}

func (fakeBackend) Add(a, b *RawTensor) *RawTensor             { return a }
func (fakeBackend) Sub(a, b *RawTensor) *RawTensor             { return a }
func (fakeBackend) Mul(a, b *RawTensor) *RawTensor             { return a }
func (fakeBackend) Div(a, b *RawTensor) *RawTensor             { return a }
func (fakeBackend) MatMul(a, b *RawTensor) *RawTensor          { return a }
func (fakeBackend) Reshape(a *RawTensor, s Shape) *RawTensor   { return a }
func (fakeBackend) Transpose(a *RawTensor) *RawTensor          { return a }
func (fakeBackend) Name() string                               { return "fake" }

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestShapeNumElements(t *testing.T) {
	if got := (Shape{2, 3, 4}).NumElements(); got != 24 {
		t.Errorf("NumElements = %d, want 24", got)
	}
	if got := (Shape{}).NumElements(); got != 1 {
		t.Errorf("scalar NumElements = %d, want 1", got)
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("valid shape rejected: %v", err)
	}
	if err := (Shape{2, 0}).Validate(); err == nil {
		t.Error("zero dimension accepted")
	}
	if err := (Shape{-1}).Validate(); err == nil {
		t.Error("negative dimension accepted")
	}
}

func TestComputeStrides(t *testing.T) {
	strides := Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Errorf("strides = %v, want %v", strides, want)
			break
		}
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b, want Shape
		broadcast  bool
		wantErr    bool
	}{
		{Shape{3, 5}, Shape{3, 5}, Shape{3, 5}, false, false},
		{Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, true, false},
		{Shape{5}, Shape{3, 5}, Shape{3, 5}, true, false},
		{Shape{4, 1, 3}, Shape{2, 3}, Shape{4, 2, 3}, true, false},
		{Shape{3, 4}, Shape{3, 5}, nil, false, true},
	}
	for _, tt := range tests {
		got, broadcast, err := BroadcastShapes(tt.a, tt.b)
		if tt.wantErr {
			if err == nil {
				t.Errorf("BroadcastShapes(%v, %v): expected error", tt.a, tt.b)
			}
			continue
		}
		if err != nil {
			t.Errorf("BroadcastShapes(%v, %v): %v", tt.a, tt.b, err)
			continue
		}
		if !got.Equal(tt.want) || broadcast != tt.broadcast {
			t.Errorf("BroadcastShapes(%v, %v) = %v/%v, want %v/%v",
				tt.a, tt.b, got, broadcast, tt.want, tt.broadcast)
		}
	}
}

func TestFromSlice(t *testing.T) {
	x, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, fakeBackend{})
	if err != nil {
		t.Fatal(err)
	}
	if !floatEqual(float64(x.At(1, 2)), 6) {
		t.Errorf("At(1,2) = %v, want 6", x.At(1, 2))
	}

	if _, err := FromSlice([]float32{1, 2, 3}, Shape{2, 3}, fakeBackend{}); err == nil {
		t.Error("length mismatch accepted")
	}
}

func TestAtSet(t *testing.T) {
	x, err := New[float64](Shape{3, 2}, fakeBackend{})
	if err != nil {
		t.Fatal(err)
	}
	x.Set(7.5, 2, 1)
	if !floatEqual(x.At(2, 1), 7.5) {
		t.Errorf("At(2,1) = %v, want 7.5", x.At(2, 1))
	}
}

func TestItem(t *testing.T) {
	x, err := FromSlice([]float32{42}, Shape{1}, fakeBackend{})
	if err != nil {
		t.Fatal(err)
	}
	if x.Item() != 42 {
		t.Errorf("Item = %v, want 42", x.Item())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	x, _ := FromSlice([]float32{1, 2}, Shape{2}, fakeBackend{})
	y := x.Clone()
	y.Set(99, 0)
	if x.At(0) != 1 {
		t.Error("Clone shares storage with the original")
	}
}

func TestCreation(t *testing.T) {
	ones, err := Ones[float32](Shape{2, 2}, fakeBackend{})
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range ones.Data() {
		if v != 1 {
			t.Fatalf("Ones contains %v", v)
		}
	}

	ar, err := Arange[int32](4, fakeBackend{})
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range ar.Data() {
		if v != int32(i) {
			t.Fatalf("Arange[%d] = %d", i, v)
		}
	}
}

func TestWithShape(t *testing.T) {
	raw := MustNewRaw(Shape{2, 3}, Float32)
	raw.AsFloat32()[5] = 9

	view, err := raw.WithShape(Shape{3, 2})
	if err != nil {
		t.Fatal(err)
	}
	if view.AsFloat32()[5] != 9 {
		t.Error("WithShape does not share data")
	}

	if _, err := raw.WithShape(Shape{4}); err == nil {
		t.Error("element count mismatch accepted")
	}
}

func TestDataTypeSize(t *testing.T) {
	sizes := map[DataType]int{Float32: 4, Float64: 8, Int32: 4, Uint8: 1}
	for dt, want := range sizes {
		if dt.Size() != want {
			t.Errorf("%s.Size() = %d, want %d", dt, dt.Size(), want)
		}
	}
}
