package alipay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const responseSuffix = "_response"

// envelopeKey 返回方法对应的响应节点名，如 alipay_trade_close_response。
func envelopeKey(method string) string {
	return strings.ReplaceAll(strings.TrimSpace(method), ".", "_") + responseSuffix
}

// rawEnvelope 保留响应节点原始字节，用于同步验签。
type rawEnvelope struct {
	node json.RawMessage
	sign string
}

func splitEnvelope(body []byte, key string) (*rawEnvelope, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, fmt.Errorf("%w: decode response failed", ErrResponseInvalid)
	}
	node, ok := top[key]
	if !ok || len(bytes.TrimSpace(node)) == 0 || string(bytes.TrimSpace(node)) == "null" {
		return nil, fmt.Errorf("%w: %s not found", ErrResponseInvalid, key)
	}
	env := &rawEnvelope{node: node}
	if rawSign, ok := top[signField]; ok {
		var sign string
		if err := json.Unmarshal(rawSign, &sign); err == nil {
			env.sign = sign
		}
	}
	return env, nil
}

func decodeNode(env *rawEnvelope, key string) (map[string]interface{}, error) {
	decoder := json.NewDecoder(bytes.NewReader(env.node))
	decoder.UseNumber()
	var data map[string]interface{}
	if err := decoder.Decode(&data); err != nil || data == nil {
		return nil, fmt.Errorf("%w: %s is not an object", ErrResponseInvalid, key)
	}
	return data, nil
}

// interpret 解析网关响应并区分成功与业务失败，成功时原样返回响应节点。
func interpret(body []byte, key string) (map[string]interface{}, error) {
	env, err := splitEnvelope(body, key)
	if err != nil {
		return nil, err
	}
	data, err := decodeNode(env, key)
	if err != nil {
		return nil, err
	}
	if isSuccessMsg(readString(data, "msg")) {
		return data, nil
	}
	return nil, &BusinessError{
		Code:    readString(data, "code"),
		Msg:     readString(data, "msg"),
		SubCode: readString(data, "sub_code"),
		SubMsg:  readString(data, "sub_msg"),
	}
}

func isSuccessMsg(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "success")
}

// verifyEnvelope 校验同步响应签名，签名覆盖响应节点的原始 JSON 文本。
func verifyEnvelope(body []byte, key, publicKeyPEM string) error {
	env, err := splitEnvelope(body, key)
	if err != nil {
		return err
	}
	if strings.TrimSpace(env.sign) == "" {
		return nil
	}
	ok, err := Verify(string(env.node), env.sign, publicKeyPEM)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrSignatureInvalid, key)
	}
	return nil
}

func readString(raw map[string]interface{}, key string) string {
	if raw == nil {
		return ""
	}
	value, ok := raw[key]
	if !ok || value == nil {
		return ""
	}
	if str, ok := value.(string); ok {
		return str
	}
	return fmt.Sprintf("%v", value)
}
