package book

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/transaction"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// =========================================
// 内存假实现
// =========================================

type fakeBookRepo struct {
	nextID uint
	books  map[uint]*book.Book
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{nextID: 1, books: make(map[uint]*book.Book)}
}

func (r *fakeBookRepo) Create(ctx context.Context, b *book.Book) error {
	b.ID = r.nextID
	r.nextID++
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookRepo) Update(ctx context.Context, b *book.Book) error {
	if _, ok := r.books[b.ID]; !ok {
		return book.ErrBookNotFound
	}
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *fakeBookRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var result []*book.Book
	for _, b := range r.books {
		cp := *b
		result = append(result, &cp)
	}
	return result, int64(len(result)), nil
}

func (r *fakeBookRepo) CountByISBN(ctx context.Context, isbn string) (int64, error) {
	var n int64
	for _, b := range r.books {
		if b.ISBN == isbn {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookRepo) LockCopiesByISBN(ctx context.Context, isbn string) ([]*book.Book, error) {
	var result []*book.Book
	for _, b := range r.books {
		if b.ISBN == isbn {
			cp := *b
			result = append(result, &cp)
		}
	}
	return result, nil
}

type fakeAuthorRepo struct {
	authors map[uint]*author.Author
}

func (r *fakeAuthorRepo) Create(ctx context.Context, a *author.Author) error { return nil }

func (r *fakeAuthorRepo) FindByID(ctx context.Context, id uint) (*author.Author, error) {
	a, ok := r.authors[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	return a, nil
}

func (r *fakeAuthorRepo) Update(ctx context.Context, a *author.Author) error { return nil }
func (r *fakeAuthorRepo) Delete(ctx context.Context, id uint) error          { return nil }
func (r *fakeAuthorRepo) List(ctx context.Context, params author.ListParams) ([]*author.Author, int64, error) {
	return nil, 0, nil
}

// fakeLoanRepo 只实现馆藏管理用到的查询,其余方法不会被调用
type fakeLoanRepo struct {
	openByBook map[uint]*transaction.Transaction
}

func (r *fakeLoanRepo) Create(ctx context.Context, tx *transaction.Transaction) error { return nil }
func (r *fakeLoanRepo) FindByID(ctx context.Context, id uint) (*transaction.Transaction, error) {
	return nil, transaction.ErrTransactionNotFound
}
func (r *fakeLoanRepo) MarkReturned(ctx context.Context, id uint, returnDate time.Time) error {
	return nil
}
func (r *fakeLoanRepo) Update(ctx context.Context, tx *transaction.Transaction) error { return nil }
func (r *fakeLoanRepo) Delete(ctx context.Context, id uint) error                     { return nil }

func (r *fakeLoanRepo) CountOpenByISBN(ctx context.Context, isbn string) (int64, error) {
	return int64(len(r.openByBook)), nil
}

func (r *fakeLoanRepo) FindOpenByBookID(ctx context.Context, bookID uint) (*transaction.Transaction, error) {
	tx, ok := r.openByBook[bookID]
	if !ok {
		return nil, transaction.ErrTransactionNotFound
	}
	return tx, nil
}

func (r *fakeLoanRepo) List(ctx context.Context, params transaction.ListParams) ([]*transaction.Transaction, int64, error) {
	return nil, 0, nil
}

func newFixture() (*ManageBookUseCase, *fakeBookRepo, *fakeLoanRepo) {
	bookRepo := newFakeBookRepo()
	authorRepo := &fakeAuthorRepo{authors: map[uint]*author.Author{
		1: {ID: 1, Name: "刘慈欣"},
	}}
	loanRepo := &fakeLoanRepo{openByBook: make(map[uint]*transaction.Transaction)}
	return NewManageBookUseCase(bookRepo, authorRepo, loanRepo), bookRepo, loanRepo
}

// =========================================
// 测试用例
// =========================================

// TestCreate_Success 录入副本成功
func TestCreate_Success(t *testing.T) {
	uc, _, _ := newFixture()

	info, err := uc.Create(context.Background(), CreateBookRequest{
		Title:           "三体",
		ISBN:            "9787536692930",
		PublicationYear: 2008,
		AuthorID:        1,
	})
	if err != nil {
		t.Fatalf("录入副本失败: %v", err)
	}

	if info.ID == 0 {
		t.Error("副本ID应该已分配")
	}
	if info.ISBN != "9787536692930" {
		t.Errorf("ISBN = %s, 期望 9787536692930", info.ISBN)
	}
}

// TestCreate_SameISBNAddsCopy 同一ISBN重复录入是加副本,不是报错
func TestCreate_SameISBNAddsCopy(t *testing.T) {
	uc, bookRepo, _ := newFixture()

	req := CreateBookRequest{Title: "三体", ISBN: "9787536692930", AuthorID: 1}
	for i := 0; i < 3; i++ {
		if _, err := uc.Create(context.Background(), req); err != nil {
			t.Fatalf("第%d次录入失败: %v", i+1, err)
		}
	}

	n, _ := bookRepo.CountByISBN(context.Background(), "9787536692930")
	if n != 3 {
		t.Errorf("副本总数 = %d, 期望 3", n)
	}
}

// TestCreate_InvalidISBN ISBN格式错误被拒绝
func TestCreate_InvalidISBN(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.Create(context.Background(), CreateBookRequest{
		Title:    "三体",
		ISBN:     "not-an-isbn",
		AuthorID: 1,
	})
	if !errors.Is(err, book.ErrInvalidISBN) {
		t.Errorf("err = %v, 期望 ErrInvalidISBN", err)
	}
}

// TestCreate_AuthorNotFound 作者不存在时拒绝录入
func TestCreate_AuthorNotFound(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.Create(context.Background(), CreateBookRequest{
		Title:    "三体",
		ISBN:     "9787536692930",
		AuthorID: 999,
	})
	appErr := apperrors.GetAppError(err)
	if appErr.Code != apperrors.ErrCodeAuthorNotFound {
		t.Errorf("错误码 = %d, 期望 %d", appErr.Code, apperrors.ErrCodeAuthorNotFound)
	}
}

// TestUpdate_MoveToAnotherISBNGroup 修改ISBN相当于把副本移入另一个ISBN组
func TestUpdate_MoveToAnotherISBNGroup(t *testing.T) {
	uc, bookRepo, _ := newFixture()

	info, err := uc.Create(context.Background(), CreateBookRequest{
		Title: "三体", ISBN: "9787536692930", AuthorID: 1,
	})
	if err != nil {
		t.Fatalf("录入副本失败: %v", err)
	}

	newISBN := "9787536693968"
	if _, err := uc.Update(context.Background(), info.ID, UpdateBookRequest{ISBN: &newISBN}); err != nil {
		t.Fatalf("更新副本失败: %v", err)
	}

	oldCount, _ := bookRepo.CountByISBN(context.Background(), "9787536692930")
	newCount, _ := bookRepo.CountByISBN(context.Background(), newISBN)
	if oldCount != 0 || newCount != 1 {
		t.Errorf("副本分布 = 旧组%d/新组%d, 期望 0/1", oldCount, newCount)
	}
}

// TestDelete_BorrowedCopy 在借的副本不能删除
func TestDelete_BorrowedCopy(t *testing.T) {
	uc, _, loanRepo := newFixture()

	info, err := uc.Create(context.Background(), CreateBookRequest{
		Title: "三体", ISBN: "9787536692930", AuthorID: 1,
	})
	if err != nil {
		t.Fatalf("录入副本失败: %v", err)
	}

	loanRepo.openByBook[info.ID] = transaction.NewTransaction(1, info.ID, time.Now())

	err = uc.Delete(context.Background(), info.ID)
	if !errors.Is(err, book.ErrBookBorrowed) {
		t.Errorf("err = %v, 期望 ErrBookBorrowed", err)
	}

	// 归还后可以删除
	delete(loanRepo.openByBook, info.ID)
	if err := uc.Delete(context.Background(), info.ID); err != nil {
		t.Errorf("归还后删除失败: %v", err)
	}
}

// TestDelete_NotFound 删除不存在的副本
func TestDelete_NotFound(t *testing.T) {
	uc, _, _ := newFixture()

	err := uc.Delete(context.Background(), 999)
	if !errors.Is(err, book.ErrBookNotFound) {
		t.Errorf("err = %v, 期望 ErrBookNotFound", err)
	}
}
