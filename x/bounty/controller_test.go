package bounty

import (
	"math/rand"
	"testing"

	"github.com/algobounty/weave"
	"github.com/algobounty/weave/errors"
	"github.com/algobounty/weave/gconf"
	"github.com/algobounty/weave/store"
	"github.com/algobounty/weave/weavetest"
	"github.com/algobounty/weave/x/ledger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestControllerScenario(t *testing.T) {
	Convey("Given a native token bounty", t, func() {
		db := store.MemStore()
		funds := ledger.NewController()
		ctrl := NewController(funds)
		native := ledger.NativeAsset()

		maintainer := weavetest.NewCondition().Address()
		funder := weavetest.NewCondition().Address()
		contributor := weavetest.NewCondition().Address()
		stranger := weavetest.NewCondition().Address()
		const issue = "octo/hello#42"

		So(funds.Issue(db, funder, native, 1000), ShouldBeNil)

		balance := func(addr weave.Address) uint64 {
			v, err := funds.Balance(db, addr, native)
			So(err, ShouldBeNil)
			return v
		}
		total := func() uint64 {
			info, err := ctrl.Info(db, issue)
			So(err, ShouldBeNil)
			return info.Total
		}

		out, err := ctrl.Create(db, issue, native, maintainer, maintainer)
		So(err, ShouldBeNil)
		So(out, ShouldEqual, "Bounty created for issue: octo/hello#42")

		info, err := ctrl.Info(db, issue)
		So(err, ShouldBeNil)
		So(info.Initialized, ShouldBeTrue)
		So(info.Resolved, ShouldBeFalse)
		So(info.Total, ShouldEqual, 0)
		So(info.Maintainer.Equals(maintainer), ShouldBeTrue)

		Convey("creating it again fails", func() {
			_, err := ctrl.Create(db, issue, native, maintainer, maintainer)
			So(ErrAlreadyInitialized.Is(err), ShouldBeTrue)
		})

		Convey("funding accumulates the total", func() {
			out, err := ctrl.Fund(db, issue, 100, funder)
			So(err, ShouldBeNil)
			So(out, ShouldEqual, MsgFunded)
			_, err = ctrl.Fund(db, issue, 50, funder)
			So(err, ShouldBeNil)

			So(total(), ShouldEqual, 150)
			So(balance(Custody(issue)), ShouldEqual, 150)
			So(balance(funder), ShouldEqual, 850)

			Convey("a stranger cannot distribute", func() {
				_, err := ctrl.Distribute(db, issue, contributor, 10, stranger)
				So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
				So(total(), ShouldEqual, 150)
			})

			Convey("the maintainer cannot distribute before resolution", func() {
				_, err := ctrl.Distribute(db, issue, contributor, 10, maintainer)
				So(ErrNotResolved.Is(err), ShouldBeTrue)
				So(total(), ShouldEqual, 150)
			})

			Convey("a stranger cannot resolve", func() {
				_, err := ctrl.MarkResolved(db, issue, stranger)
				So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
				info, _ := ctrl.Info(db, issue)
				So(info.Resolved, ShouldBeFalse)
			})

			Convey("once resolved", func() {
				out, err := ctrl.MarkResolved(db, issue, maintainer)
				So(err, ShouldBeNil)
				So(out, ShouldEqual, MsgResolved)

				Convey("resolving again changes nothing", func() {
					_, err := ctrl.MarkResolved(db, issue, maintainer)
					So(err, ShouldBeNil)
					info, _ := ctrl.Info(db, issue)
					So(info.Resolved, ShouldBeTrue)
					So(info.Total, ShouldEqual, 150)
				})

				Convey("funding is refused", func() {
					_, err := ctrl.Fund(db, issue, 10, funder)
					So(ErrAlreadyResolved.Is(err), ShouldBeTrue)
					So(total(), ShouldEqual, 150)
				})

				Convey("payouts and refunds drain the bounty", func() {
					out, err := ctrl.Distribute(db, issue, contributor, 120, maintainer)
					So(err, ShouldBeNil)
					So(out, ShouldEqual, MsgDistributed)
					So(total(), ShouldEqual, 30)
					So(balance(contributor), ShouldEqual, 120)

					_, err = ctrl.Distribute(db, issue, contributor, 40, maintainer)
					So(errors.ErrInsufficientAmount.Is(err), ShouldBeTrue)
					So(total(), ShouldEqual, 30)
					So(balance(contributor), ShouldEqual, 120)

					out, err = ctrl.Refund(db, issue, 30, maintainer)
					So(err, ShouldBeNil)
					So(out, ShouldEqual, MsgRefunded)
					So(total(), ShouldEqual, 0)
					So(balance(maintainer), ShouldEqual, 30)
					So(balance(Custody(issue)), ShouldEqual, 0)
				})

				Convey("the custody account cannot be paid out", func() {
					_, err := ctrl.Distribute(db, issue, Custody(issue), 120, maintainer)
					So(errors.ErrInput.Is(err), ShouldBeTrue)
					So(total(), ShouldEqual, 150)
					So(balance(Custody(issue)), ShouldEqual, 150)

					_, err = ctrl.Refund(db, issue, 150, maintainer)
					So(err, ShouldBeNil)
					So(total(), ShouldEqual, 0)
					So(balance(maintainer), ShouldEqual, 150)
				})

				Convey("zero amounts are refused", func() {
					_, err := ctrl.Distribute(db, issue, contributor, 0, maintainer)
					So(errors.ErrAmount.Is(err), ShouldBeTrue)
					_, err = ctrl.Refund(db, issue, 0, maintainer)
					So(errors.ErrAmount.Is(err), ShouldBeTrue)
				})

				Convey("refunds can be disabled after resolution", func() {
					conf := &Configuration{Owner: maintainer, RefundPolicy: RefundPolicyBeforeResolution}
					So(gconf.Save(db, configPkg, conf), ShouldBeNil)
					_, err := ctrl.Refund(db, issue, 10, maintainer)
					So(ErrAlreadyResolved.Is(err), ShouldBeTrue)
					So(total(), ShouldEqual, 150)
				})
			})

			Convey("the maintainer can refund before resolution", func() {
				_, err := ctrl.Refund(db, issue, 100, maintainer)
				So(err, ShouldBeNil)
				So(total(), ShouldEqual, 50)
				So(balance(maintainer), ShouldEqual, 100)
			})

			Convey("a stranger cannot refund", func() {
				_, err := ctrl.Refund(db, issue, 100, stranger)
				So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
				So(total(), ShouldEqual, 150)
			})
		})

		Convey("funding zero fails", func() {
			_, err := ctrl.Fund(db, issue, 0, funder)
			So(errors.ErrAmount.Is(err), ShouldBeTrue)
			So(total(), ShouldEqual, 0)
		})

		Convey("funding beyond the funder balance fails", func() {
			_, err := ctrl.Fund(db, issue, 1001, funder)
			So(ErrTransferFailed.Is(err), ShouldBeTrue)
			So(errors.ErrInsufficientAmount.Is(err), ShouldBeTrue)
			So(total(), ShouldEqual, 0)
			So(balance(funder), ShouldEqual, 1000)
		})
	})
}

func TestControllerUninitialized(t *testing.T) {
	Convey("Given an issue without a bounty", t, func() {
		db := store.MemStore()
		ctrl := NewController(ledger.NewController())
		someone := weavetest.NewCondition().Address()
		const issue = "octo/hello#1"

		Convey("info reports an empty record", func() {
			info, err := ctrl.Info(db, issue)
			So(err, ShouldBeNil)
			So(info.Initialized, ShouldBeFalse)
			So(info.Total, ShouldEqual, 0)
			So(info.IssueID, ShouldEqual, issue)
		})

		Convey("every operation but create fails", func() {
			_, err := ctrl.Fund(db, issue, 1, someone)
			So(ErrNotInitialized.Is(err), ShouldBeTrue)
			_, err = ctrl.Distribute(db, issue, someone, 1, someone)
			So(ErrNotInitialized.Is(err), ShouldBeTrue)
			_, err = ctrl.MarkResolved(db, issue, someone)
			So(ErrNotInitialized.Is(err), ShouldBeTrue)
			_, err = ctrl.Refund(db, issue, 1, someone)
			So(ErrNotInitialized.Is(err), ShouldBeTrue)
		})

		Convey("empty issue ids are refused", func() {
			_, err := ctrl.Info(db, "")
			So(errors.ErrEmpty.Is(err), ShouldBeTrue)
		})
	})
}

func TestControllerFungibleAsset(t *testing.T) {
	Convey("Given a fungible asset bounty", t, func() {
		db := store.MemStore()
		funds := ledger.NewController()
		ctrl := NewController(funds)
		gold := ledger.FungibleAsset(9)

		maintainer := weavetest.NewCondition().Address()
		funder := weavetest.NewCondition().Address()
		contributor := weavetest.NewCondition().Address()
		const issue = "octo/gold#3"

		So(ledger.NewAssetBucket().Create(db, &ledger.Asset{ID: 9, UnitName: "GLD", Name: "Gold"}), ShouldBeNil)
		So(funds.Issue(db, funder, gold, 500), ShouldBeNil)

		Convey("an unknown asset cannot back a bounty", func() {
			_, err := ctrl.Create(db, issue, ledger.FungibleAsset(10), maintainer, maintainer)
			So(ledger.ErrUnknownAsset.Is(err), ShouldBeTrue)
			info, err := ctrl.Info(db, issue)
			So(err, ShouldBeNil)
			So(info.Initialized, ShouldBeFalse)
		})

		Convey("the custody is opted in on creation", func() {
			_, err := ctrl.Create(db, issue, gold, maintainer, maintainer)
			So(err, ShouldBeNil)
			_, err = ctrl.Fund(db, issue, 200, funder)
			So(err, ShouldBeNil)
			v, err := funds.Balance(db, Custody(issue), gold)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 200)

			_, err = ctrl.MarkResolved(db, issue, maintainer)
			So(err, ShouldBeNil)

			Convey("a contributor must opt in before being paid", func() {
				_, err := ctrl.Distribute(db, issue, contributor, 50, maintainer)
				So(ErrTransferFailed.Is(err), ShouldBeTrue)
				So(ledger.ErrNotOptedIn.Is(err), ShouldBeTrue)

				So(funds.OptIn(db, contributor, gold), ShouldBeNil)
				_, err = ctrl.Distribute(db, issue, contributor, 50, maintainer)
				So(err, ShouldBeNil)
				v, _ := funds.Balance(db, contributor, gold)
				So(v, ShouldEqual, 50)
				info, _ := ctrl.Info(db, issue)
				So(info.Total, ShouldEqual, 150)
			})
		})
	})
}

func TestControllerRandomSequence(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		db := store.MemStore()
		funds := ledger.NewController()
		ctrl := NewController(funds)
		native := ledger.NativeAsset()
		rnd := rand.New(rand.NewSource(seed))

		maintainer := weavetest.NewCondition().Address()
		funder := weavetest.NewCondition().Address()
		contributor := weavetest.NewCondition().Address()
		const issue = "octo/random#7"

		if err := funds.Issue(db, funder, native, 1000000); err != nil {
			t.Fatalf("seed %d: cannot issue: %s", seed, err)
		}
		if _, err := ctrl.Create(db, issue, native, maintainer, maintainer); err != nil {
			t.Fatalf("seed %d: cannot create: %s", seed, err)
		}

		var funded, distributed, refunded uint64
		for step := 0; step < 200; step++ {
			amount := uint64(rnd.Intn(300))
			switch op := rnd.Intn(10); {
			case op < 5:
				if _, err := ctrl.Fund(db, issue, amount, funder); err == nil {
					funded += amount
				}
			case op < 7:
				payee := contributor
				if rnd.Intn(4) == 0 {
					payee = Custody(issue)
				}
				if _, err := ctrl.Distribute(db, issue, payee, amount, maintainer); err == nil {
					distributed += amount
				}
			case op < 9:
				if _, err := ctrl.Refund(db, issue, amount, maintainer); err == nil {
					refunded += amount
				}
			default:
				if _, err := ctrl.MarkResolved(db, issue, maintainer); err != nil {
					t.Fatalf("seed %d step %d: cannot resolve: %s", seed, step, err)
				}
			}

			info, err := ctrl.Info(db, issue)
			if err != nil {
				t.Fatalf("seed %d step %d: cannot read bounty: %s", seed, step, err)
			}
			custody, err := funds.Balance(db, Custody(issue), native)
			if err != nil {
				t.Fatalf("seed %d step %d: cannot read custody: %s", seed, step, err)
			}
			want := funded - distributed - refunded
			if info.Total != want || custody != want {
				t.Fatalf("seed %d step %d: want %d, got total %d and custody %d", seed, step, want, info.Total, custody)
			}
		}
		paid, err := funds.Balance(db, contributor, native)
		if err != nil {
			t.Fatalf("seed %d: cannot read contributor: %s", seed, err)
		}
		if paid != distributed {
			t.Fatalf("seed %d: want contributor balance %d, got %d", seed, distributed, paid)
		}
	}
}

func TestControllerAtomicity(t *testing.T) {
	db := store.MemStore()
	maintainer := weavetest.NewCondition().Address()
	const issue = "octo/broken#1"

	ctrl := NewController(brokenLedger{ledger.NewController()})
	if _, err := ctrl.Create(db, issue, ledger.NativeAsset(), maintainer, maintainer); err != nil {
		t.Fatalf("cannot create: %s", err)
	}

	_, err := ctrl.Fund(db, issue, 10, maintainer)
	if !ErrTransferFailed.Is(err) || !errors.ErrDatabase.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
	if raw, err := db.Get(brokenKey); err != nil || raw != nil {
		t.Fatalf("partial write of a failed operation persisted: %q, %v", raw, err)
	}
	info, err := ctrl.Info(db, issue)
	if err != nil {
		t.Fatalf("cannot read bounty: %s", err)
	}
	if info.Total != 0 {
		t.Fatalf("want total 0, got %d", info.Total)
	}
}

var brokenKey = []byte("broken:write")

// brokenLedger writes to the store and then fails every transfer.
type brokenLedger struct {
	ledger.Controller
}

func (l brokenLedger) Transfer(db weave.KVStore, src, dest weave.Address, kind ledger.AssetKind, amount uint64) error {
	if err := db.Set(brokenKey, []byte("partial")); err != nil {
		return err
	}
	return errors.Wrap(errors.ErrDatabase, "ledger unavailable")
}
