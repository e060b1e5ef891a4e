package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる。y は n×1 の列ベクトル
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を n×1 の列ベクトルで返す
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Model は教師あり学習モデルの基本インターフェース。
// 決定境界の評価など汎用ヘルパーはこの契約だけに依存する。
type Model interface {
	Fitter
	Predictor
}

// Classifier は分類器のインターフェース
type Classifier interface {
	Model

	// Score はテストデータに対する正解率を返す
	Score(X, y mat.Matrix) (float64, error)

	// Classes は学習時に観測したクラスラベルを昇順で返す
	Classes() []float64
}

// DecisionFunctioner はクラスごとの判別スコアを返せる分類器
type DecisionFunctioner interface {
	// DecisionFunction は n×n_classes のスコア行列を返す
	DecisionFunction(X mat.Matrix) (mat.Matrix, error)
}

// ProbabilisticClassifier は確率推定が可能な分類器
type ProbabilisticClassifier interface {
	Classifier

	// PredictProba は n×n_classes の確率行列を返す
	PredictProba(X mat.Matrix) (mat.Matrix, error)
}
