package model

import "reflect"

// Name はモデルの型名をパッケージ名やポインタ記号なしで返す。
// 表示用で、nil の場合は空文字列を返す。
//
//	model.Name(discriminant_analysis.NewDLDA()) // "DLDA"
func Name(m interface{}) string {
	if m == nil {
		return ""
	}
	t := reflect.TypeOf(m)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
