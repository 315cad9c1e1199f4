package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dujiao-next/alipay-gateway/internal/config"
	"github.com/dujiao-next/alipay-gateway/internal/logger"
	"github.com/dujiao-next/alipay-gateway/internal/payment/alipay"
	"github.com/dujiao-next/alipay-gateway/internal/provider"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func main() {
	var (
		kind       string
		outTradeNo string
		amount     string
		subject    string
		returnURL  string
		notifyURL  string
		quitURL    string
	)
	flag.StringVar(&kind, "kind", "page", "支付方式: page / wap")
	flag.StringVar(&outTradeNo, "out-trade-no", "", "商户订单号，留空自动生成")
	flag.StringVar(&amount, "amount", "", "订单金额（元）")
	flag.StringVar(&subject, "subject", "", "订单标题")
	flag.StringVar(&returnURL, "return-url", "", "同步跳转地址，覆盖配置")
	flag.StringVar(&notifyURL, "notify-url", "", "异步通知地址，覆盖配置")
	flag.StringVar(&quitURL, "quit-url", "", "用户中途退出返回地址（仅 wap）")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	totalAmount, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		stdLog.Fatalf("金额格式错误: %v", err)
	}
	if strings.TrimSpace(outTradeNo) == "" {
		outTradeNo = strings.ReplaceAll(uuid.NewString(), "-", "")
	}

	client, err := provider.NewAlipayClient(cfg)
	if err != nil {
		stdLog.Fatalf("支付宝客户端初始化失败: %v", err)
	}

	urls := alipay.CallbackURLs{ReturnURL: returnURL, NotifyURL: notifyURL}
	var payURL string
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "page":
		payURL, err = client.PagePay(alipay.PagePayInput{
			CallbackURLs: urls,
			OutTradeNo:   outTradeNo,
			TotalAmount:  totalAmount,
			Subject:      subject,
		})
	case "wap":
		payURL, err = client.WapPay(alipay.WapPayInput{
			CallbackURLs: urls,
			OutTradeNo:   outTradeNo,
			TotalAmount:  totalAmount,
			Subject:      subject,
			QuitURL:      quitURL,
		})
	default:
		stdLog.Fatalf("不支持的支付方式: %s", kind)
	}
	if err != nil {
		stdLog.Fatalf("生成支付链接失败: %v", err)
	}

	logger.Infow("paylink_generated", "out_trade_no", outTradeNo, "environment", client.Environment().String())
	fmt.Fprintln(os.Stdout, payURL)
}
