package dto

// Response is the uniform envelope every route returns.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func OK(data any) Response {
	return Response{Status: "success", Data: data}
}

func OKMessage(msg string, data any) Response {
	return Response{Status: "success", Message: msg, Data: data}
}

func Error(msg string) Response {
	return Response{Status: "error", Message: msg}
}
