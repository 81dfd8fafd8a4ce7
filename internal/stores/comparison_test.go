package stores

import (
	"encoding/json"
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/Sam-eff/car-rental-site/internal/models"
	"github.com/Sam-eff/car-rental-site/internal/shared"
	tu "github.com/Sam-eff/car-rental-site/internal/testing"
	"github.com/shopspring/decimal"
)

func ids(cars []models.Car) []int64 {
	out := make([]int64, len(cars))
	for i, c := range cars {
		out[i] = c.ID
	}
	return out
}

func TestComparisonStore(t *testing.T) {
	t.Run("Init", func(t *testing.T) {
		t.Run("Missing Value", func(t *testing.T) {
			s := NewComparisonStore(tu.NewMemorySlot(nil), nil)

			if s.Len() != 0 {
				t.Errorf("expected empty store, got %d", s.Len())
			}
		})

		t.Run("Corrupt Value", func(t *testing.T) {
			slot := tu.NewMemorySlot(map[string]string{ComparisonKey: "{not json"})
			s := NewComparisonStore(slot, nil)

			if s.Len() != 0 {
				t.Errorf("expected corrupt value to be treated as empty, got %d", s.Len())
			}
		})

		t.Run("Wrong Shape", func(t *testing.T) {
			slot := tu.NewMemorySlot(map[string]string{ComparisonKey: `{"id":1}`})
			s := NewComparisonStore(slot, nil)

			if s.Len() != 0 {
				t.Errorf("expected non-array value to be treated as empty, got %d", s.Len())
			}
		})

		t.Run("Read Failure", func(t *testing.T) {
			slot := tu.NewMemorySlot(nil)
			slot.GetErr = errors.New("disk gone")
			s := NewComparisonStore(slot, nil)

			if s.Len() != 0 {
				t.Errorf("expected empty store on read failure, got %d", s.Len())
			}
		})

		t.Run("Over Capacity Or Duplicated Value", func(t *testing.T) {
			data, _ := json.Marshal([]models.Car{car(1), car(1), car(2), car(3), car(4)})
			slot := tu.NewMemorySlot(map[string]string{ComparisonKey: string(data)})
			s := NewComparisonStore(slot, nil)

			got := ids(s.List())
			if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
				t.Errorf("expected [1 2 3], got %v", got)
			}
		})
	})

	t.Run("Add", func(t *testing.T) {
		t.Run("Capacity", func(t *testing.T) {
			s := NewComparisonStore(tu.NewMemorySlot(nil), nil)

			for _, id := range []int64{1, 2, 3} {
				if r := s.Add(car(id)); !r.Success {
					t.Fatalf("expected add %d to succeed, got %+v", id, r)
				}
			}
			if s.Len() != 3 {
				t.Fatalf("expected size 3, got %d", s.Len())
			}

			r := s.Add(car(4))
			if r.Success || !errors.Is(r.Err, shared.ErrCapacityExceeded) {
				t.Errorf("expected ErrCapacityExceeded, got %+v", r)
			}
			if r.Message != "You can only compare up to 3 cars" {
				t.Errorf("unexpected message %q", r.Message)
			}
			if s.Len() != 3 || s.Contains(4) {
				t.Errorf("expected size to stay 3 without car 4, got %v", ids(s.List()))
			}
		})

		t.Run("Duplicate", func(t *testing.T) {
			s := NewComparisonStore(tu.NewMemorySlot(nil), nil)
			s.Add(car(1))

			r := s.Add(car(1))
			if r.Success || !errors.Is(r.Err, shared.ErrDuplicate) {
				t.Errorf("expected ErrDuplicate, got %+v", r)
			}
			if r.Message != "Car already in comparison" {
				t.Errorf("unexpected message %q", r.Message)
			}
			if s.Len() != 1 {
				t.Errorf("expected size 1, got %d", s.Len())
			}
		})

		t.Run("Capacity Checked Before Duplicate", func(t *testing.T) {
			s := NewComparisonStore(tu.NewMemorySlot(nil), nil)
			s.Add(car(1))
			s.Add(car(2))
			s.Add(car(3))

			if r := s.Add(car(2)); !errors.Is(r.Err, shared.ErrCapacityExceeded) {
				t.Errorf("expected ErrCapacityExceeded for a full store, got %v", r.Err)
			}
		})

		t.Run("Never Exceeds Capacity", func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))

			for run := 0; run < 50; run++ {
				s := NewComparisonStore(tu.NewMemorySlot(nil), nil)
				for step := 0; step < 20; step++ {
					id := int64(rng.Intn(8))
					if rng.Intn(4) == 0 {
						s.Remove(id)
					} else {
						s.Add(car(id))
					}

					if s.Len() > MaxComparison {
						t.Fatalf("run %d step %d: size %d exceeds capacity", run, step, s.Len())
					}
					seen := map[int64]bool{}
					for _, c := range s.List() {
						if seen[c.ID] {
							t.Fatalf("run %d step %d: duplicate id %d", run, step, c.ID)
						}
						seen[c.ID] = true
					}
				}
			}
		})
	})

	t.Run("Remove", func(t *testing.T) {
		t.Run("Then Contains", func(t *testing.T) {
			s := NewComparisonStore(tu.NewMemorySlot(nil), nil)
			s.Add(car(5))

			s.Remove(5)
			if s.Contains(5) {
				t.Error("expected contains to be false after remove")
			}
		})

		t.Run("Absent Is No-op", func(t *testing.T) {
			s := NewComparisonStore(tu.NewMemorySlot(nil), nil)
			s.Add(car(1))
			s.Add(car(2))

			if r := s.Remove(1); !r.Success {
				t.Fatalf("expected remove to succeed, got %+v", r)
			}
			if got := ids(s.List()); len(got) != 1 || got[0] != 2 {
				t.Fatalf("expected [2], got %v", got)
			}

			if r := s.Remove(1); !r.Success {
				t.Errorf("expected second remove to be a successful no-op, got %+v", r)
			}
			if got := ids(s.List()); len(got) != 1 || got[0] != 2 {
				t.Errorf("expected [2] to be unchanged, got %v", got)
			}
		})
	})

	t.Run("Clear", func(t *testing.T) {
		slot := tu.NewMemorySlot(nil)
		s := NewComparisonStore(slot, nil)
		s.Add(car(1))
		s.Add(car(2))

		if r := s.Clear(); !r.Success {
			t.Fatalf("expected clear to succeed, got %+v", r)
		}
		if s.Len() != 0 {
			t.Errorf("expected empty store, got %d", s.Len())
		}
		if raw, _ := slot.Value(ComparisonKey); raw != "[]" {
			t.Errorf("expected persisted empty array, got %q", raw)
		}
	})

	t.Run("Toggle", func(t *testing.T) {
		s := NewComparisonStore(tu.NewMemorySlot(nil), nil)

		s.Toggle(car(1))
		if !s.Contains(1) {
			t.Error("expected toggle to add")
		}
		s.Toggle(car(1))
		if s.Contains(1) {
			t.Error("expected toggle to remove")
		}
	})

	t.Run("CanCompare", func(t *testing.T) {
		s := NewComparisonStore(tu.NewMemorySlot(nil), nil)
		s.Add(car(1))
		if s.CanCompare() {
			t.Error("expected one car to be too few")
		}
		s.Add(car(2))
		if !s.CanCompare() {
			t.Error("expected two cars to be enough")
		}
		if s.Max() != 3 {
			t.Errorf("expected max 3, got %d", s.Max())
		}
	})

	t.Run("List Is A Copy", func(t *testing.T) {
		s := NewComparisonStore(tu.NewMemorySlot(nil), nil)
		s.Add(car(1))

		list := s.List()
		list[0].ID = 99
		if !s.Contains(1) {
			t.Error("mutating the returned list should not change the store")
		}
	})

	t.Run("Persistence", func(t *testing.T) {
		t.Run("Round Trip", func(t *testing.T) {
			hp := 203
			original := []models.Car{
				{ID: 3, Name: "RAV4", PricePerDay: decimal.RequireFromString("59.95"), Horsepower: &hp,
					Speed: decimal.NewNullDecimal(decimal.RequireFromString("180.5"))},
				car(1),
				car(2),
			}

			slot := tu.NewMemorySlot(nil)
			s := NewComparisonStore(slot, nil)
			for _, c := range original {
				s.Add(c)
			}

			reloaded := NewComparisonStore(slot, nil).List()
			if len(reloaded) != len(original) {
				t.Fatalf("expected %d cars after reload, got %d", len(original), len(reloaded))
			}

			got, want := ids(reloaded), ids(original)
			sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
			sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("expected ids %v, got %v", want, got)
				}
			}

			for _, r := range reloaded {
				if r.ID != 3 {
					continue
				}
				if !r.PricePerDay.Equal(decimal.RequireFromString("59.95")) {
					t.Errorf("expected exact price, got %s", r.PricePerDay)
				}
				if r.Horsepower == nil || *r.Horsepower != 203 {
					t.Errorf("expected horsepower 203, got %v", r.Horsepower)
				}
				if !r.Speed.Valid || !r.Speed.Decimal.Equal(decimal.RequireFromString("180.5")) {
					t.Errorf("expected speed 180.5, got %v", r.Speed)
				}
			}
		})

		t.Run("Written On Every Mutation", func(t *testing.T) {
			slot := tu.NewMemorySlot(nil)
			s := NewComparisonStore(slot, nil)

			s.Add(car(1))
			s.Add(car(2))
			s.Remove(1)
			s.Clear()

			if slot.Writes() != 4 {
				t.Errorf("expected 4 writes, got %d", slot.Writes())
			}
		})

		t.Run("Rejected Mutations Are Not Written", func(t *testing.T) {
			slot := tu.NewMemorySlot(nil)
			s := NewComparisonStore(slot, nil)

			s.Add(car(1))
			s.Add(car(1))
			if slot.Writes() != 1 {
				t.Errorf("expected 1 write, got %d", slot.Writes())
			}
		})

		t.Run("Write Failure", func(t *testing.T) {
			slot := tu.NewMemorySlot(nil)
			slot.SetErr = errors.New("disk full")
			s := NewComparisonStore(slot, nil)

			r := s.Add(car(1))
			if r.Success || !errors.Is(r.Err, shared.ErrPersistence) {
				t.Errorf("expected ErrPersistence, got %+v", r)
			}
			if !s.Contains(1) {
				t.Error("expected the in-memory mutation to be kept")
			}
		})
	})
}
