package mq

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"
)

// TestNewLoanEvent 测试事件载荷构造
func TestNewLoanEvent(t *testing.T) {
	borrowDate := time.Date(2024, 11, 6, 10, 30, 0, 0, time.UTC)

	e := NewLoanEvent(123, 456, 789, "9787115428028", borrowDate, nil)

	if e.TransactionID != 123 || e.UserID != 456 || e.BookID != 789 {
		t.Errorf("事件ID字段不正确: %+v", e)
	}
	if e.BorrowDate != "2024-11-06T10:30:00Z" {
		t.Errorf("期望BorrowDate为RFC3339格式，实际%s", e.BorrowDate)
	}
	if e.ReturnDate != "" {
		t.Errorf("未归还事件不应有ReturnDate，实际%s", e.ReturnDate)
	}

	returnDate := borrowDate.Add(7 * 24 * time.Hour)
	e = NewLoanEvent(123, 456, 789, "9787115428028", borrowDate, &returnDate)
	if e.ReturnDate != "2024-11-13T10:30:00Z" {
		t.Errorf("期望ReturnDate=2024-11-13T10:30:00Z，实际%s", e.ReturnDate)
	}
}

// TestLoanEvent_JSON 测试事件序列化（消费方按此契约解析）
func TestLoanEvent_JSON(t *testing.T) {
	e := NewLoanEvent(1, 2, 3, "9787115428028", time.Now(), nil)

	body, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("反序列化失败: %v", err)
	}

	if _, ok := decoded["return_date"]; ok {
		t.Error("未归还事件的JSON不应包含return_date字段")
	}
	if decoded["isbn"] != "9787115428028" {
		t.Errorf("isbn字段不正确: %v", decoded["isbn"])
	}
}

// TestPublisher_Publish 测试发布事件（需要本地RabbitMQ）
// 通过LIBRARY_TEST_AMQP_URL指定broker地址，未设置则跳过
func TestPublisher_Publish(t *testing.T) {
	url := os.Getenv("LIBRARY_TEST_AMQP_URL")
	if url == "" {
		t.Skip("未设置LIBRARY_TEST_AMQP_URL，跳过RabbitMQ集成测试")
	}

	publisher, err := NewPublisher(url, "library.test.loans")
	if err != nil {
		t.Fatalf("创建Publisher失败: %v", err)
	}
	defer publisher.Close()

	event := NewLoanEvent(123, 456, 789, "9787115428028", time.Now(), nil)
	if err := publisher.Publish(context.Background(), RoutingKeyLoanBorrowed, event); err != nil {
		t.Fatalf("发布事件失败: %v", err)
	}
}
