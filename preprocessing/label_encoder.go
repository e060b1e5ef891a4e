// Package preprocessing はデータ前処理のユーティリティを提供する
package preprocessing

import (
	"fmt"
	"sort"

	"github.com/mlwpy/mlwgo/core/model"
	"github.com/mlwpy/mlwgo/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// LabelEncoder はscikit-learn互換のラベルエンコーダー
// 文字列ラベルを 0..n_classes-1 の数値コードに変換する
type LabelEncoder struct {
	state *model.StateManager

	// classes はソート済みの一意なラベル
	classes []string

	// index はラベルからコードへの対応
	index map[string]int
}

// NewLabelEncoder は新しいLabelEncoderを作成する
//
// 使用例:
//
//	enc := preprocessing.NewLabelEncoder()
//	y, err := enc.FitTransform([]string{"setosa", "virginica", "setosa"})
//	// y = [0, 1, 0]
func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{state: model.NewStateManager()}
}

// Fit はラベル集合を学習する。クラスの順序は辞書順
//
// パラメータ:
//   - labels: 学習するラベル列
//
// 戻り値:
//   - error: ラベルが空の場合
func (e *LabelEncoder) Fit(labels []string) error {
	if len(labels) == 0 {
		return errors.NewModelError("LabelEncoder.Fit", "empty data", errors.ErrEmptyData)
	}

	seen := make(map[string]struct{}, len(labels))
	classes := make([]string, 0)
	for _, l := range labels {
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			classes = append(classes, l)
		}
	}
	sort.Strings(classes)

	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}

	e.classes = classes
	e.index = index
	e.state.MarkFitted(1, len(labels))
	return nil
}

// Transform はラベルを数値コードの列ベクトル (n×1) に変換する
//
// 戻り値:
//   - *mat.VecDense: 数値コード
//   - error: 未学習、または未知のラベルが含まれる場合
func (e *LabelEncoder) Transform(labels []string) (*mat.VecDense, error) {
	if err := e.state.RequireFitted("LabelEncoder", "Transform"); err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, errors.NewValueError("LabelEncoder.Transform", "no labels to transform")
	}

	codes := make([]float64, len(labels))
	for i, l := range labels {
		code, ok := e.index[l]
		if !ok {
			return nil, errors.NewValueError("LabelEncoder.Transform", fmt.Sprintf("y contains previously unseen label %q", l))
		}
		codes[i] = float64(code)
	}
	return mat.NewVecDense(len(codes), codes), nil
}

// FitTransform はFitとTransformを続けて実行する
func (e *LabelEncoder) FitTransform(labels []string) (*mat.VecDense, error) {
	if err := e.Fit(labels); err != nil {
		return nil, err
	}
	return e.Transform(labels)
}

// InverseTransform は数値コードの列ベクトルを元のラベルに戻す
//
// 戻り値:
//   - []string: 元のラベル
//   - error: 未学習、形状不正、範囲外のコードの場合
func (e *LabelEncoder) InverseTransform(y mat.Matrix) ([]string, error) {
	if err := e.state.RequireFitted("LabelEncoder", "InverseTransform"); err != nil {
		return nil, err
	}

	r, c := y.Dims()
	if c != 1 {
		return nil, errors.NewDimensionError("LabelEncoder.InverseTransform", 1, c, 1)
	}

	labels := make([]string, r)
	for i := 0; i < r; i++ {
		v := y.At(i, 0)
		code := int(v)
		if float64(code) != v || code < 0 || code >= len(e.classes) {
			return nil, errors.NewValueError("LabelEncoder.InverseTransform", fmt.Sprintf("invalid class code %v", v))
		}
		labels[i] = e.classes[code]
	}
	return labels, nil
}

// IsFitted は学習済みかどうかを返す
func (e *LabelEncoder) IsFitted() bool {
	return e.state.IsFitted()
}

// Classes は学習済みのラベルを辞書順で返す
func (e *LabelEncoder) Classes() []string {
	return append([]string(nil), e.classes...)
}
