// Package memory implementa los repositorios en memoria. Sirve como doble de prueba
// del núcleo: su TxRunner serializa transacciones, respeta el timeout de bloqueo y
// deshace los cambios si la función devuelve error.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
)

type balanceKey struct {
	itemID     string
	locationID string
}

type countKey struct {
	inventoryID string
	itemID      string
}

// Store guarda todas las tablas en mapas protegidos por mu.
type Store struct {
	mu          sync.RWMutex
	items       map[string]entity.Item
	suppliers   map[string]entity.Supplier
	locations   map[string]entity.Location
	balances    map[balanceKey]entity.Balance
	movements   []entity.Movement
	inventories map[string]entity.Inventory
	counts      map[countKey]entity.InventoryItem
	users       map[string]entity.User

	txSem        chan struct{}
	lockTimeout  time.Duration
	beforeCommit func() error
}

// NewStore crea un almacén vacío. lockTimeout acota la espera por la transacción en curso.
func NewStore(lockTimeout time.Duration) *Store {
	return &Store{
		items:       make(map[string]entity.Item),
		suppliers:   make(map[string]entity.Supplier),
		locations:   make(map[string]entity.Location),
		balances:    make(map[balanceKey]entity.Balance),
		inventories: make(map[string]entity.Inventory),
		counts:      make(map[countKey]entity.InventoryItem),
		users:       make(map[string]entity.User),
		txSem:       make(chan struct{}, 1),
		lockTimeout: lockTimeout,
	}
}

// SetBeforeCommit instala un gancho que corre justo antes del commit; si devuelve error
// la transacción se deshace. Solo para pruebas de atomicidad.
func (s *Store) SetBeforeCommit(fn func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beforeCommit = fn
}

// Run ejecuta fn como una transacción: una a la vez, Rollback si fn o el commit fallan.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	balanceRepo repository.BalanceRepository,
	locationRepo repository.LocationRepository,
) error) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer func() { <-s.txSem }()

	snap := s.snapshot()
	err := fn(s.Movements(), s.Balances(), s.Locations())
	if err == nil {
		s.mu.RLock()
		hook := s.beforeCommit
		s.mu.RUnlock()
		if hook != nil {
			err = hook()
		}
	}
	if err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) acquire(ctx context.Context) error {
	timer := time.NewTimer(s.lockTimeout)
	defer timer.Stop()
	select {
	case s.txSem <- struct{}{}:
		return nil
	case <-timer.C:
		return domain.ErrLockTimeout
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return domain.ErrLockTimeout
		}
		return ctx.Err()
	}
}

type snapshot struct {
	balances  map[balanceKey]entity.Balance
	locations map[string]entity.Location
	movements int
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		balances:  make(map[balanceKey]entity.Balance, len(s.balances)),
		locations: make(map[string]entity.Location, len(s.locations)),
		movements: len(s.movements),
	}
	for k, v := range s.balances {
		snap.balances[k] = v
	}
	for k, v := range s.locations {
		snap.locations[k] = v
	}
	return snap
}

// restore vuelve a las tablas tocadas por el ledger; los movimientos son solo inserción.
func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances = snap.balances
	s.locations = snap.locations
	s.movements = s.movements[:snap.movements]
}

// Items devuelve el repositorio de artículos.
func (s *Store) Items() *ItemRepository { return &ItemRepository{s: s} }

// Suppliers devuelve el repositorio de proveedores.
func (s *Store) Suppliers() *SupplierRepository { return &SupplierRepository{s: s} }

// Locations devuelve el repositorio de ubicaciones.
func (s *Store) Locations() *LocationRepository { return &LocationRepository{s: s} }

// Balances devuelve el repositorio de saldos.
func (s *Store) Balances() *BalanceRepository { return &BalanceRepository{s: s} }

// Movements devuelve el repositorio de movimientos.
func (s *Store) Movements() *MovementRepository { return &MovementRepository{s: s} }

// Inventories devuelve el repositorio de inventarios.
func (s *Store) Inventories() *InventoryRepository { return &InventoryRepository{s: s} }

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Reports devuelve el repositorio de reportes.
func (s *Store) Reports() *ReportRepository { return &ReportRepository{s: s} }
