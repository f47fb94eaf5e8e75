package infra

import (
	"fmt"

	"github.com/HelloMeow10/project-root-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies any idempotent SQL patches that GORM
// cannot express (partial indexes mostly).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates / updates the schema. Also used by integration tests
// against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() needs pgcrypto on PG < 13
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Rol{},
		&model.Usuario{},
		&model.Cliente{},
		&model.DireccionFacturacion{},
		&model.TipoProducto{},
		&model.Producto{},
		&model.PaqueteDetalle{},
		&model.TipoAsiento{},
		&model.ConfiguracionAvion{},
		&model.AsientoFisico{},
		&model.Pasaje{},
		&model.OpcionEquipaje{},
		&model.Carrito{},
		&model.ItemCarrito{},
		&model.Pedido{},
		&model.ItemPedido{},
		&model.SeleccionAsiento{},
		&model.SeleccionEquipaje{},
		&model.Venta{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Partial index backing the expiry cron query over unpaid orders.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_pedidos_pendientes') THEN
		    CREATE INDEX idx_pedidos_pendientes
		        ON pedidos (created_at)
		        WHERE estado = 'PENDIENTE_PAGO';
		  END IF;
		END $$`,
		// Partial index for the seat-occupancy join: only non-cancelled orders count.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_selecciones_asiento_ocupacion') THEN
		    CREATE INDEX idx_selecciones_asiento_ocupacion
		        ON selecciones_asiento (asiento_fisico_id);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
