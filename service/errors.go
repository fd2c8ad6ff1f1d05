package service

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCaseText   = errors.New("case text is empty")
	ErrGeneration      = errors.New("generation failed")
	ErrParse           = errors.New("response is not a JSON object")
	ErrFieldAccess     = errors.New("required field missing from response")
	ErrStoreConnect    = errors.New("store unavailable")
	ErrStoreWrite      = errors.New("store write failed")
	ErrNoPendingResult = errors.New("no pending analysis")
)

// ErrorCode maps an error to the code used in JSON error envelopes.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrEmptyCaseText):
		return "EMPTY_CASE_TEXT"
	case errors.Is(err, ErrGeneration):
		return "GENERATION_FAILED"
	case errors.Is(err, ErrParse):
		return "PARSE_FAILED"
	case errors.Is(err, ErrFieldAccess):
		return "FIELD_MISSING"
	case errors.Is(err, ErrStoreConnect):
		return "STORE_UNAVAILABLE"
	case errors.Is(err, ErrStoreWrite):
		return "STORE_WRITE_FAILED"
	case errors.Is(err, ErrNoPendingResult):
		return "NO_PENDING_RESULT"
	default:
		return "INTERNAL_ERROR"
	}
}

// UserMessage converts an error into the message shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrEmptyCaseText):
		return "분석할 내용을 입력해주세요."
	case errors.Is(err, ErrGeneration):
		return fmt.Sprintf("AI 분석 중 오류: %v", err)
	case errors.Is(err, ErrParse):
		return fmt.Sprintf("AI 응답을 해석하지 못했습니다. 판례 내용을 다시 분석해주세요: %v", err)
	case errors.Is(err, ErrFieldAccess):
		return fmt.Sprintf("AI 응답에 필수 항목이 없습니다: %v", err)
	case errors.Is(err, ErrStoreConnect):
		return "저장소 연결을 확인해주세요."
	case errors.Is(err, ErrStoreWrite):
		return fmt.Sprintf("저장 중 오류가 발생했습니다: %v", err)
	case errors.Is(err, ErrNoPendingResult):
		return "검토 중인 분석 결과가 없습니다."
	default:
		return fmt.Sprintf("오류가 발생했습니다: %v", err)
	}
}
