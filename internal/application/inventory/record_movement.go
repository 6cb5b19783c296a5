package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/casaguflo/inventario-api/internal/domain"
	"github.com/casaguflo/inventario-api/internal/domain/entity"
	"github.com/casaguflo/inventario-api/internal/domain/inventory"
	"github.com/casaguflo/inventario-api/pkg/logger"
)

// RecordMovementUseCase registra ingresos y despachos de forma transaccional: cabecera, líneas
// y stock se confirman juntos o no se confirma nada.
type RecordMovementUseCase struct {
	txRunner TxRunner
	cache    StockCache
	log      *logger.Logger
	now      func() time.Time
}

// NewRecordMovementUseCase construye el caso de uso. cache puede ser nil.
func NewRecordMovementUseCase(txRunner TxRunner, cache StockCache, log *logger.Logger) *RecordMovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RecordMovementUseCase{
		txRunner: txRunner,
		cache:    cache,
		log:      log.Component("movimientos"),
		now:      time.Now,
	}
}

// IngresoLineInput línea de un ingreso.
type IngresoLineInput struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitCost  *decimal.Decimal
}

// RecordIngresoInput entrada de stock en una bodega.
type RecordIngresoInput struct {
	WarehouseID string
	ProviderID  *string
	UserID      *string
	Date        *time.Time
	Note        *string
	Lines       []IngresoLineInput
}

// DespachoLineInput línea de un despacho. UnitPrice solo se respeta con PriceTier DESCUENTO.
type DespachoLineInput struct {
	ProductID      string
	Quantity       decimal.Decimal
	UnitPrice      *decimal.Decimal
	PriceTier      string
	DiscountReason *string
}

// RecordDespachoInput salida de stock desde una bodega.
type RecordDespachoInput struct {
	WarehouseID string
	ClientID    *string
	UserID      *string
	Date        *time.Time
	Note        *string
	Lines       []DespachoLineInput
}

type lineInput struct {
	productID string
	quantity  decimal.Decimal
	unitCost  *decimal.Decimal
	unitPrice *decimal.Decimal
	tier      entity.PriceTier
	reason    *string
}

// RecordIngreso registra un ingreso y devuelve el id del movimiento.
func (uc *RecordMovementUseCase) RecordIngreso(ctx context.Context, in RecordIngresoInput) (string, error) {
	lines := make([]lineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l.UnitCost != nil && l.UnitCost.LessThan(decimal.Zero) {
			return "", fmt.Errorf("%w: costo_unitario no puede ser negativo", domain.ErrInvalidInput)
		}
		lines = append(lines, lineInput{productID: l.ProductID, quantity: l.Quantity, unitCost: l.UnitCost})
	}
	mov := &entity.Movement{
		Type:        entity.MovementIngreso,
		WarehouseID: strings.TrimSpace(in.WarehouseID),
		ProviderID:  blankToNil(in.ProviderID),
		UserID:      blankToNil(in.UserID),
		Note:        blankToNil(in.Note),
	}
	if in.Date != nil {
		mov.Date = *in.Date
	}
	return uc.recordMovement(ctx, mov, lines)
}

// RecordDespacho registra un despacho y devuelve el id del movimiento.
// Si algún stock quedara negativo devuelve domain.ErrInsufficientStock y no persiste nada.
func (uc *RecordMovementUseCase) RecordDespacho(ctx context.Context, in RecordDespachoInput) (string, error) {
	lines := make([]lineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		tier, err := inventory.ParsePriceTier(l.PriceTier)
		if err != nil {
			return "", err
		}
		if l.UnitPrice != nil && l.UnitPrice.LessThan(decimal.Zero) {
			return "", fmt.Errorf("%w: precio_unitario no puede ser negativo", domain.ErrInvalidInput)
		}
		lines = append(lines, lineInput{
			productID: l.ProductID,
			quantity:  l.Quantity,
			unitPrice: l.UnitPrice,
			tier:      tier,
			reason:    l.DiscountReason,
		})
	}
	mov := &entity.Movement{
		Type:        entity.MovementDespacho,
		WarehouseID: strings.TrimSpace(in.WarehouseID),
		ClientID:    blankToNil(in.ClientID),
		UserID:      blankToNil(in.UserID),
		Note:        blankToNil(in.Note),
	}
	if in.Date != nil {
		mov.Date = *in.Date
	}
	return uc.recordMovement(ctx, mov, lines)
}

type stockKey struct {
	productID   string
	warehouseID string
}

func (uc *RecordMovementUseCase) recordMovement(ctx context.Context, mov *entity.Movement, raw []lineInput) (string, error) {
	if mov.WarehouseID == "" {
		return "", fmt.Errorf("%w: bodega_id es obligatorio", domain.ErrInvalidInput)
	}
	lines, err := dropEmptyLines(raw)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("%w: se requiere al menos un detalle con producto y cantidad > 0", domain.ErrInvalidInput)
	}

	// UUIDv7: ordenable por instante de registro
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generar id de movimiento: %w", err)
	}
	now := uc.now().UTC()
	mov.ID = id.String()
	mov.CreatedAt = now
	if mov.Date.IsZero() {
		mov.Date = now
	}

	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		if err := checkReferences(ctx, repos, mov); err != nil {
			return err
		}
		if err := repos.Movements.Create(ctx, mov); err != nil {
			return err
		}

		touched := make(map[stockKey]decimal.Decimal, len(lines))
		order := make([]stockKey, 0, len(lines))
		for i, in := range lines {
			if !in.quantity.GreaterThan(decimal.Zero) {
				return fmt.Errorf("%w: detalle %d con cantidad inválida", domain.ErrInvalidInput, i+1)
			}
			product, err := repos.Products.GetByID(ctx, in.productID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: producto %s", domain.ErrReferenceNotFound, in.productID)
			}

			line := buildLine(mov, i+1, product, in)
			if err := repos.Movements.CreateLine(ctx, line); err != nil {
				return err
			}

			qty, err := repos.Stock.ApplyDelta(ctx, product.ID, mov.WarehouseID, in.quantity.Mul(mov.Type.Sign()))
			if err != nil {
				return err
			}
			key := stockKey{productID: product.ID, warehouseID: mov.WarehouseID}
			if _, seen := touched[key]; !seen {
				order = append(order, key)
			}
			touched[key] = qty
		}

		// Solo importa el resultado agregado: se verifica al final, antes del commit.
		for _, key := range order {
			if qty := touched[key]; qty.LessThan(decimal.Zero) {
				return fmt.Errorf("%w: producto %s en bodega %s quedaría en %s",
					domain.ErrInsufficientStock, key.productID, key.warehouseID, qty.String())
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).
			Str("tipo", string(mov.Type)).
			Str("bodega_id", mov.WarehouseID).
			Int("detalles", len(lines)).
			Msg("movimiento rechazado")
		return "", err
	}

	if uc.cache != nil {
		if err := uc.cache.Bump(ctx); err != nil {
			uc.log.Error().Err(err).Msg("invalidar caché de stock")
		}
	}
	uc.log.Info().
		Str("movimiento_id", mov.ID).
		Str("tipo", string(mov.Type)).
		Str("bodega_id", mov.WarehouseID).
		Int("detalles", len(lines)).
		Msg("movimiento registrado")
	return mov.ID, nil
}

// checkReferences valida existencia de bodega y contraparte. Los registros inactivos se aceptan.
func checkReferences(ctx context.Context, repos TxRepos, mov *entity.Movement) error {
	wh, err := repos.Warehouses.GetByID(ctx, mov.WarehouseID)
	if err != nil {
		return err
	}
	if wh == nil {
		return fmt.Errorf("%w: bodega %s", domain.ErrReferenceNotFound, mov.WarehouseID)
	}
	if mov.ProviderID != nil {
		p, err := repos.Providers.GetByID(ctx, *mov.ProviderID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: proveedor %s", domain.ErrReferenceNotFound, *mov.ProviderID)
		}
	}
	if mov.ClientID != nil {
		c, err := repos.Clients.GetByID(ctx, *mov.ClientID)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("%w: cliente %s", domain.ErrReferenceNotFound, *mov.ClientID)
		}
	}
	return nil
}

func buildLine(mov *entity.Movement, position int, product *entity.Product, in lineInput) *entity.MovementLine {
	line := &entity.MovementLine{
		ID:         uuid.New().String(),
		MovementID: mov.ID,
		Position:   position,
		ProductID:  product.ID,
		Quantity:   in.quantity,
	}
	switch mov.Type {
	case entity.MovementIngreso:
		switch {
		case in.unitCost != nil:
			cost := *in.unitCost
			line.UnitCost = &cost
		case product.PurchasePrice.GreaterThan(decimal.Zero):
			cost := product.PurchasePrice
			line.UnitCost = &cost
		}
	case entity.MovementDespacho:
		tier := in.tier
		price := inventory.ResolveUnitPrice(product, tier, in.unitPrice)
		line.UnitPrice = &price
		line.PriceTier = &tier
		line.DiscountReason = inventory.DiscountReasonFor(tier, in.reason)
	}
	return line
}

// dropEmptyLines descarta detalles sin producto o con cantidad 0 (o ausente); no es un error.
// Una cantidad negativa explícita sí lo es.
func dropEmptyLines(lines []lineInput) ([]lineInput, error) {
	out := make([]lineInput, 0, len(lines))
	for i, l := range lines {
		l.productID = strings.TrimSpace(l.productID)
		if l.productID != "" && l.quantity.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: detalle %d con cantidad negativa", domain.ErrInvalidInput, i+1)
		}
		if l.productID == "" || l.quantity.IsZero() {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
