package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestInitMetrics 测试指标初始化与重复调用保护
func TestInitMetrics(t *testing.T) {
	InitMetrics()

	if LoansBorrowedTotal == nil || LoansReturnedTotal == nil || LoansDeniedTotal == nil {
		t.Fatal("借阅指标未初始化")
	}
	if HTTPRequestsTotal == nil || HTTPRequestDuration == nil {
		t.Fatal("HTTP指标未初始化")
	}

	// 重复调用不应panic（promauto重复注册会panic，靠initialized标记保护）
	InitMetrics()
}

// TestLoanCounters 测试借阅计数器
func TestLoanCounters(t *testing.T) {
	InitMetrics()

	before := testutil.ToFloat64(LoansBorrowedTotal)
	LoansBorrowedTotal.Inc()
	LoansBorrowedTotal.Inc()
	after := testutil.ToFloat64(LoansBorrowedTotal)

	if after-before != 2 {
		t.Errorf("期望计数器增加2，实际增加%v", after-before)
	}

	deniedBefore := testutil.ToFloat64(LoansDeniedTotal)
	LoansDeniedTotal.Inc()
	if testutil.ToFloat64(LoansDeniedTotal)-deniedBefore != 1 {
		t.Error("拒绝计数器未递增")
	}
}

// TestEventsPublishedTotal 测试事件发布计数器标签
func TestEventsPublishedTotal(t *testing.T) {
	InitMetrics()

	borrowed := EventsPublishedTotal.WithLabelValues("loan.borrowed")
	before := testutil.ToFloat64(borrowed)
	borrowed.Inc()

	if testutil.ToFloat64(borrowed)-before != 1 {
		t.Error("loan.borrowed计数器未递增")
	}
}
