package mpesa

import (
	"strconv"
)

// CallbackEnvelope mirrors the JSON Safaricom posts to the STK push callback
// URL. CallbackMetadata is only present on successful payments.
type CallbackEnvelope struct {
	Body struct {
		STKCallback struct {
			MerchantRequestID string            `json:"MerchantRequestID"`
			CheckoutRequestID string            `json:"CheckoutRequestID"`
			ResultCode        int               `json:"ResultCode"`
			ResultDesc        string            `json:"ResultDesc"`
			CallbackMetadata  *CallbackMetadata `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

type CallbackMetadata struct {
	Item []CallbackItem `json:"Item"`
}

// CallbackItem values arrive untyped: amounts come as JSON numbers, receipts
// as strings and phone numbers as either.
type CallbackItem struct {
	Name  string `json:"Name"`
	Value any    `json:"Value"`
}

// CallbackDetails is the flattened, typed view of a callback envelope.
type CallbackDetails struct {
	ResultCode        int
	ResultDescription string
	CheckoutRequestID string
	Receipt           string
	Amount            int64
	Phone             string
}

// Details flattens the envelope's metadata items. Missing or malformed items
// leave the corresponding field at its zero value so a partial callback can
// still be matched by its CheckoutRequestID.
func (e CallbackEnvelope) Details() CallbackDetails {
	callback := e.Body.STKCallback

	details := CallbackDetails{
		ResultCode:        callback.ResultCode,
		ResultDescription: callback.ResultDesc,
		CheckoutRequestID: callback.CheckoutRequestID,
	}

	if callback.CallbackMetadata == nil {
		return details
	}

	for _, item := range callback.CallbackMetadata.Item {
		switch item.Name {
		case "MpesaReceiptNumber":
			details.Receipt = asString(item.Value)
		case "Amount":
			details.Amount = asInt64(item.Value)
		case "PhoneNumber":
			details.Phone = asString(item.Value)
		}
	}

	return details
}

func asString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return ""
	}
}

func asInt64(value any) int64 {
	switch v := value.(type) {
	case float64:
		return int64(v)
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
