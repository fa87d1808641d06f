package repository

import "encoding/json"

// marshalJSONB сериализует списочное поле для записи в колонку JSONB.
// nil-срез записывается как пустой массив.
func marshalJSONB(v any) ([]byte, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v)
}

// unmarshalJSONB разбирает колонку JSONB в указанное значение.
// NULL и пустые байты трактуются как пустой массив.
func unmarshalJSONB(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
