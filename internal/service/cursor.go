package service

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// nilUUID — «пустой» курсор/родитель, который присылают некоторые клиенты.
const nilUUID = "00000000-0000-0000-0000-000000000000"

// encodeThreadCursor кодирует смещение в непрозрачный токен для клиента.
func encodeThreadCursor(offset int64) string {
	return base64.RawURLEncoding.EncodeToString([]byte("t|" + strconv.FormatInt(offset, 10)))
}

// decodeThreadCursor декодирует токен обратно в смещение. Пустой токен и nil UUID — начало ветки.
func decodeThreadCursor(token string) (int64, error) {
	token = strings.TrimSpace(token)
	if token == "" || token == nilUUID {
		return 0, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, err
	}

	rest, ok := strings.CutPrefix(string(raw), "t|")
	if !ok {
		return 0, fmt.Errorf("bad cursor prefix")
	}

	offset, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, err
	}

	if offset < 0 {
		return 0, fmt.Errorf("negative offset")
	}

	return offset, nil
}

// emptyRef — пустая ссылка на комментарий (корень ветки).
func emptyRef(id string) bool {
	id = strings.TrimSpace(id)
	return id == "" || id == nilUUID
}
