package biz

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// VerifyWebhookSignature 校验支付服务商回调签名
// 签名头格式: t=<unix秒>,v1=<hex>[,v1=<hex>...]
// 用共享密钥对 "{t}.{payload}" 计算 HMAC-SHA256，与所有 v1 签名做常数时间比较；
// 时间戳超出容忍窗口的重放报文无论签名是否正确都拒绝
func VerifyWebhookSignature(payload []byte, header, secret string, now time.Time, tolerance time.Duration) error {
	var ts int64 = -1
	var sigs [][]byte
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			v, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid signature timestamp %q", kv[1])
			}
			ts = v
		case "v1":
			sig, err := hex.DecodeString(kv[1])
			if err == nil && len(sig) > 0 {
				sigs = append(sigs, sig)
			}
		}
	}
	if ts < 0 {
		return fmt.Errorf("signature header missing timestamp")
	}
	if len(sigs) == 0 {
		return fmt.Errorf("signature header missing v1 signature")
	}

	diff := now.Unix() - ts
	if diff < 0 {
		diff = -diff
	}
	if diff > int64(tolerance/time.Second) {
		return fmt.Errorf("signature timestamp outside tolerance (%ds)", diff)
	}

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, sig := range sigs {
		if hmac.Equal(sig, expected) {
			return nil
		}
	}
	return fmt.Errorf("no matching signature")
}
