package preprocessing

// ScalingMethod は数値特徴量に適用するスケーリング規則です。
// 学習サービスがメタデータの scaling_method フィールドに記録します。
type ScalingMethod string

const (
	// ScalingStandard は標準化 (value - mean) / scale を適用します。
	ScalingStandard ScalingMethod = "standard"

	// ScalingMinMax はmin-maxスケーリング (value - min) / scale を適用します。
	ScalingMinMax ScalingMethod = "minmax"
)

// parseScalingMethod はメタデータの文字列をScalingMethodに変換します。
// 未知の値は標準化として扱われます。
func parseScalingMethod(name string) ScalingMethod {
	if name == string(ScalingMinMax) {
		return ScalingMinMax
	}
	return ScalingStandard
}

// scalingParams は数値特徴量1つ分のスケーリングパラメータです。
// 学習時にフィットされたスケーラーから書き出された値をそのまま保持します。
// standard では mean と scale、minmax では min と scale が使われます。
type scalingParams struct {
	Mean  float64 `json:"mean"`
	Scale float64 `json:"scale"`
	Min   float64 `json:"min"`
}

// apply は学習時のパラメータで値をスケーリングします。
// パラメータブロックが欠落している場合（スケールが0）、結果は
// 非有限値となり、呼び出し側の有限性チェックで検出されます。
func (p scalingParams) apply(method ScalingMethod, value float64) float64 {
	if method == ScalingMinMax {
		return (value - p.Min) / p.Scale
	}
	return (value - p.Mean) / p.Scale
}
