package transaction

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/transaction"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
)

// TestMain 用例会累加借阅指标,先初始化
func TestMain(m *testing.M) {
	metrics.InitMetrics()
	os.Exit(m.Run())
}

// =========================================
// 内存版仓储与事务管理器（测试用）
// =========================================

// memStore 模拟数据库：副本表+借阅台账
// serialTx用互斥锁把事务串行化,模拟SELECT FOR UPDATE对
// 同一ISBN组的排队效果
type memStore struct {
	mu         sync.Mutex
	books      map[uint]*book.Book
	loans      map[uint]*transaction.Transaction
	nextBookID uint
	nextLoanID uint
}

func newMemStore() *memStore {
	return &memStore{
		books:      make(map[uint]*book.Book),
		loans:      make(map[uint]*transaction.Transaction),
		nextBookID: 1,
		nextLoanID: 1,
	}
}

func (s *memStore) addCopy(title, isbn string) *book.Book {
	b := book.NewBook(title, isbn, 2020, 1, "")
	b.ID = s.nextBookID
	s.nextBookID++
	s.books[b.ID] = b
	return b
}

// serialTx 串行事务管理器
// 真实实现里并发借书在行锁上排队,这里用互斥锁等价模拟
type serialTx struct {
	mu *sync.Mutex
}

func (t *serialTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}

// memBookRepo 内存图书仓储
type memBookRepo struct {
	store *memStore
}

func (r *memBookRepo) Create(ctx context.Context, b *book.Book) error {
	b.ID = r.store.nextBookID
	r.store.nextBookID++
	r.store.books[b.ID] = b
	return nil
}

func (r *memBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := r.store.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (r *memBookRepo) Update(ctx context.Context, b *book.Book) error { return nil }
func (r *memBookRepo) Delete(ctx context.Context, id uint) error      { return nil }

func (r *memBookRepo) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

func (r *memBookRepo) CountByISBN(ctx context.Context, isbn string) (int64, error) {
	var count int64
	for _, b := range r.store.books {
		if b.ISBN == isbn {
			count++
		}
	}
	return count, nil
}

func (r *memBookRepo) LockCopiesByISBN(ctx context.Context, isbn string) ([]*book.Book, error) {
	result := make([]*book.Book, 0)
	for _, b := range r.store.books {
		if b.ISBN == isbn {
			result = append(result, b)
		}
	}
	return result, nil
}

// memTxRepo 内存借阅仓储
// Create模拟(book_id, open_flag)唯一索引:同一副本第二条在借记录被拒绝
type memTxRepo struct {
	store *memStore
}

func (r *memTxRepo) Create(ctx context.Context, t *transaction.Transaction) error {
	for _, loan := range r.store.loans {
		if loan.BookID == t.BookID && loan.IsOpen() {
			return transaction.ErrNoAvailableCopies
		}
	}
	t.ID = r.store.nextLoanID
	r.store.nextLoanID++
	cp := *t
	r.store.loans[t.ID] = &cp
	return nil
}

func (r *memTxRepo) FindByID(ctx context.Context, id uint) (*transaction.Transaction, error) {
	loan, ok := r.store.loans[id]
	if !ok {
		return nil, transaction.ErrTransactionNotFound
	}
	cp := *loan
	return &cp, nil
}

func (r *memTxRepo) MarkReturned(ctx context.Context, id uint, returnDate time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	loan, ok := r.store.loans[id]
	if !ok {
		return transaction.ErrTransactionNotFound
	}
	if loan.IsReturned {
		return transaction.ErrAlreadyReturned
	}
	loan.IsReturned = true
	loan.ReturnDate = &returnDate
	return nil
}

func (r *memTxRepo) Update(ctx context.Context, t *transaction.Transaction) error {
	if _, ok := r.store.loans[t.ID]; !ok {
		return transaction.ErrTransactionNotFound
	}
	cp := *t
	r.store.loans[t.ID] = &cp
	return nil
}

func (r *memTxRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.store.loans[id]; !ok {
		return transaction.ErrTransactionNotFound
	}
	delete(r.store.loans, id)
	return nil
}

func (r *memTxRepo) CountOpenByISBN(ctx context.Context, isbn string) (int64, error) {
	var count int64
	for _, loan := range r.store.loans {
		if !loan.IsOpen() {
			continue
		}
		if b, ok := r.store.books[loan.BookID]; ok && b.ISBN == isbn {
			count++
		}
	}
	return count, nil
}

func (r *memTxRepo) FindOpenByBookID(ctx context.Context, bookID uint) (*transaction.Transaction, error) {
	for _, loan := range r.store.loans {
		if loan.BookID == bookID && loan.IsOpen() {
			cp := *loan
			return &cp, nil
		}
	}
	return nil, transaction.ErrTransactionNotFound
}

func (r *memTxRepo) List(ctx context.Context, params transaction.ListParams) ([]*transaction.Transaction, int64, error) {
	result := make([]*transaction.Transaction, 0)
	for _, loan := range r.store.loans {
		if params.UserID != 0 && loan.UserID != params.UserID {
			continue
		}
		if params.BookID != 0 && loan.BookID != params.BookID {
			continue
		}
		if params.IsOpen != nil && loan.IsOpen() != *params.IsOpen {
			continue
		}
		cp := *loan
		result = append(result, &cp)
	}
	return result, int64(len(result)), nil
}

// silentPublisher 丢弃事件（测试用,避免日志噪音）
type silentPublisher struct{}

func (silentPublisher) Publish(ctx context.Context, routingKey string, event mq.LoanEvent) error {
	return nil
}

// newBorrowFixture 组装借书用例及其依赖
func newBorrowFixture(store *memStore) (*BorrowBookUseCase, *ReturnBookUseCase) {
	bookRepo := &memBookRepo{store: store}
	txRepo := &memTxRepo{store: store}
	tx := &serialTx{mu: &store.mu}

	borrow := NewBorrowBookUseCase(bookRepo, txRepo, tx, silentPublisher{})
	ret := NewReturnBookUseCase(txRepo, bookRepo, silentPublisher{})
	return borrow, ret
}

// =========================================
// 借书用例测试
// =========================================

// TestBorrowBook_Success 测试正常借书
func TestBorrowBook_Success(t *testing.T) {
	store := newMemStore()
	b := store.addCopy("Go语言实战", "9787115428028")
	borrow, _ := newBorrowFixture(store)

	info, err := borrow.Execute(context.Background(), BorrowBookRequest{UserID: 1, BookID: b.ID})
	if err != nil {
		t.Fatalf("借书失败: %v", err)
	}

	if info.ID == 0 {
		t.Error("借阅记录应分配ID")
	}
	if info.IsReturned {
		t.Error("新借阅记录应为未归还状态")
	}
	if info.BookID != b.ID || info.UserID != 1 {
		t.Errorf("借阅记录字段不正确: %+v", info)
	}
}

// TestBorrowBook_BookNotFound 测试借不存在的副本
func TestBorrowBook_BookNotFound(t *testing.T) {
	borrow, _ := newBorrowFixture(newMemStore())

	_, err := borrow.Execute(context.Background(), BorrowBookRequest{UserID: 1, BookID: 999})
	if err != book.ErrBookNotFound {
		t.Errorf("期望ErrBookNotFound，实际%v", err)
	}
}

// TestBorrowBook_NoAvailableCopies 测试无可借副本
func TestBorrowBook_NoAvailableCopies(t *testing.T) {
	store := newMemStore()
	b := store.addCopy("Go语言实战", "9787115428028")
	borrow, _ := newBorrowFixture(store)
	ctx := context.Background()

	if _, err := borrow.Execute(ctx, BorrowBookRequest{UserID: 1, BookID: b.ID}); err != nil {
		t.Fatalf("首次借书失败: %v", err)
	}

	// 唯一的副本已借出,第二个人借应被拒绝
	_, err := borrow.Execute(ctx, BorrowBookRequest{UserID: 2, BookID: b.ID})
	if err != transaction.ErrNoAvailableCopies {
		t.Errorf("期望ErrNoAvailableCopies，实际%v", err)
	}
}

// TestBorrowBook_SpecificCopyBorrowed 测试指定副本在借
// 整个ISBN组还有可借余量,但用户指定的那本恰好在借,同样拒绝
func TestBorrowBook_SpecificCopyBorrowed(t *testing.T) {
	store := newMemStore()
	b1 := store.addCopy("Go语言实战", "9787115428028")
	store.addCopy("Go语言实战", "9787115428028")
	borrow, _ := newBorrowFixture(store)
	ctx := context.Background()

	if _, err := borrow.Execute(ctx, BorrowBookRequest{UserID: 1, BookID: b1.ID}); err != nil {
		t.Fatalf("首次借书失败: %v", err)
	}

	_, err := borrow.Execute(ctx, BorrowBookRequest{UserID: 2, BookID: b1.ID})
	if err != transaction.ErrNoAvailableCopies {
		t.Errorf("期望ErrNoAvailableCopies，实际%v", err)
	}
}

// TestBorrowBook_ThreeCopies 测试三本副本的完整借还周期
// 场景:同一ISBN三本副本,借满三本后第四次被拒,
// 归还一本后可借数量回升,又能借出
func TestBorrowBook_ThreeCopies(t *testing.T) {
	store := newMemStore()
	b1 := store.addCopy("Go语言实战", "9787115428028")
	b2 := store.addCopy("Go语言实战", "9787115428028")
	b3 := store.addCopy("Go语言实战", "9787115428028")
	borrow, ret := newBorrowFixture(store)
	ctx := context.Background()

	// 借满三本
	first, err := borrow.Execute(ctx, BorrowBookRequest{UserID: 1, BookID: b1.ID})
	if err != nil {
		t.Fatalf("借第一本失败: %v", err)
	}
	if _, err := borrow.Execute(ctx, BorrowBookRequest{UserID: 2, BookID: b2.ID}); err != nil {
		t.Fatalf("借第二本失败: %v", err)
	}
	if _, err := borrow.Execute(ctx, BorrowBookRequest{UserID: 3, BookID: b3.ID}); err != nil {
		t.Fatalf("借第三本失败: %v", err)
	}

	// 第四次借应被拒绝
	if _, err := borrow.Execute(ctx, BorrowBookRequest{UserID: 4, BookID: b1.ID}); err != transaction.ErrNoAvailableCopies {
		t.Errorf("借满后应拒绝，实际%v", err)
	}

	// 归还一本
	actor := Actor{UserID: 1, Role: user.RoleRegular}
	if _, err := ret.Execute(ctx, ReturnBookRequest{Actor: actor, TransactionID: first.ID}); err != nil {
		t.Fatalf("归还失败: %v", err)
	}

	// 归还后该副本重新可借
	if _, err := borrow.Execute(ctx, BorrowBookRequest{UserID: 4, BookID: b1.ID}); err != nil {
		t.Errorf("归还后借书应成功: %v", err)
	}
}

// TestBorrowBook_Concurrent 并发借书压力测试
// 核心正确性属性:K本副本,N个并发请求,成功数恰好等于K,
// 台账上绝不会出现同一副本的两条在借记录
func TestBorrowBook_Concurrent(t *testing.T) {
	const copies = 3
	const requests = 50

	store := newMemStore()
	bookIDs := make([]uint, copies)
	for i := 0; i < copies; i++ {
		bookIDs[i] = store.addCopy("Go语言实战", "9787115428028").ID
	}
	borrow, _ := newBorrowFixture(store)

	var wg sync.WaitGroup
	var succeeded, denied int64
	var countMu sync.Mutex

	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			// 请求轮流指向各个副本
			req := BorrowBookRequest{
				UserID: uint(n + 1),
				BookID: bookIDs[n%copies],
			}
			_, err := borrow.Execute(context.Background(), req)

			countMu.Lock()
			defer countMu.Unlock()
			switch err {
			case nil:
				succeeded++
			case transaction.ErrNoAvailableCopies:
				denied++
			default:
				t.Errorf("意外错误: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if succeeded != copies {
		t.Errorf("期望恰好%d个请求成功，实际%d", copies, succeeded)
	}
	if succeeded+denied != requests {
		t.Errorf("成功+拒绝应等于请求总数: %d+%d != %d", succeeded, denied, requests)
	}

	// 验证台账:每本副本最多一条在借记录
	openByBook := make(map[uint]int)
	for _, loan := range store.loans {
		if loan.IsOpen() {
			openByBook[loan.BookID]++
		}
	}
	for bookID, n := range openByBook {
		if n > 1 {
			t.Errorf("副本%d出现%d条在借记录", bookID, n)
		}
	}
}
