package utils_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/mlwpy/mlwgo/utils"
)

func ExampleCartesianProduct() {
	p := utils.CartesianProduct([]float64{1, 2}, []float64{10, 20})
	rows, _ := p.Dims()
	for i := 0; i < rows; i++ {
		fmt.Println(mat.Row(nil, i, p))
	}
	// Output:
	// [1 10]
	// [2 10]
	// [1 20]
	// [2 20]
}

func ExampleEnumerateOuter() {
	idx, err := utils.EnumerateOuter(2, 0, 3)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(idx)
	// Output: [0 0 2 2 2]
}

func ExampleReweight() {
	examples := mat.NewDense(2, 1, []float64{7, 9})
	out, err := utils.Reweight(examples, []float64{0.5, 1.0})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(mat.Col(nil, 0, out))
	// Output: [7 9 9]
}
