package config

import "database/sql"

// EnsureSchema creates the tables the service writes to. Money columns
// are integer cents; the earnings table is append-only by convention
// (no UPDATE/DELETE anywhere in the codebase).
func EnsureSchema(db *sql.DB) error {
	ddls := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'OWNER',
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS bookings (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			booking_number VARCHAR(30) NOT NULL,
			owner_id BIGINT NOT NULL,
			walker_id BIGINT NOT NULL,
			pet_id BIGINT NOT NULL,
			service_type VARCHAR(50) NOT NULL,
			start_at DATETIME NOT NULL,
			end_at DATETIME NOT NULL,
			duration_min INT NOT NULL DEFAULT 0,
			base_price BIGINT NOT NULL DEFAULT 0,
			additional_services JSON NULL,
			subtotal BIGINT NOT NULL DEFAULT 0,
			tax BIGINT NOT NULL DEFAULT 0,
			total BIGINT NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
			payment_status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
			notes TEXT NULL,
			cancelled_at DATETIME NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_booking_number (booking_number),
			KEY idx_owner (owner_id),
			KEY idx_walker (walker_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS payments (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			booking_id BIGINT NOT NULL,
			amount BIGINT NOT NULL,
			method VARCHAR(20) NOT NULL,
			transaction_id VARCHAR(50) NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
			paid_at DATETIME NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			KEY idx_booking (booking_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS earnings (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			walker_id BIGINT NOT NULL,
			booking_id BIGINT NULL,
			amount BIGINT NOT NULL,
			type VARCHAR(20) NOT NULL,
			status VARCHAR(20) NOT NULL,
			description VARCHAR(255) NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			KEY idx_walker (walker_id),
			KEY idx_walker_status (walker_id, status)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS refunds (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			booking_id BIGINT NOT NULL,
			amount BIGINT NOT NULL,
			status VARCHAR(20) NOT NULL,
			method VARCHAR(20) NOT NULL,
			estimated_arrival VARCHAR(50) NOT NULL,
			processed_at DATETIME NOT NULL,
			UNIQUE KEY uniq_booking (booking_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS notifications (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			type VARCHAR(50) NOT NULL,
			title VARCHAR(255) NOT NULL,
			description TEXT NULL,
			link VARCHAR(255) NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			KEY idx_user (user_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	}

	for _, ddl := range ddls {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}
