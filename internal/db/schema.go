package db

// now is the default timestamp expression: UTC with millisecond precision so
// rows created within the same second still order correctly.
const now = `(strftime('%Y-%m-%d %H:%M:%f', 'now'))`

// schema is the full database schema.
//
// Child rows reference their parents together with store_id, so a row can
// only point at rows of the same store. Foreign keys without an ON DELETE
// action make deletes of referenced rows fail.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT ` + now + `
);

CREATE TABLE IF NOT EXISTS stores (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    user_id    TEXT NOT NULL REFERENCES users(id),
    created_at DATETIME NOT NULL DEFAULT ` + now + `,
    updated_at DATETIME NOT NULL DEFAULT ` + now + `
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_stores_name ON stores(name);
CREATE INDEX IF NOT EXISTS idx_stores_user ON stores(user_id);

CREATE TABLE IF NOT EXISTS billboards (
    id         TEXT PRIMARY KEY,
    store_id   TEXT NOT NULL REFERENCES stores(id),
    label      TEXT NOT NULL,
    image_url  TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT ` + now + `,
    updated_at DATETIME NOT NULL DEFAULT ` + now + `,
    UNIQUE (id, store_id)
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_billboards_label ON billboards(store_id, label);

CREATE TABLE IF NOT EXISTS categories (
    id           TEXT PRIMARY KEY,
    store_id     TEXT NOT NULL REFERENCES stores(id),
    billboard_id TEXT NOT NULL,
    name         TEXT NOT NULL,
    created_at   DATETIME NOT NULL DEFAULT ` + now + `,
    updated_at   DATETIME NOT NULL DEFAULT ` + now + `,
    UNIQUE (id, store_id),
    FOREIGN KEY (billboard_id, store_id) REFERENCES billboards(id, store_id)
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name ON categories(store_id, name);
CREATE INDEX IF NOT EXISTS idx_categories_billboard ON categories(billboard_id, store_id);

CREATE TABLE IF NOT EXISTS sizes (
    id         TEXT PRIMARY KEY,
    store_id   TEXT NOT NULL REFERENCES stores(id),
    name       TEXT NOT NULL,
    value      TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT ` + now + `,
    updated_at DATETIME NOT NULL DEFAULT ` + now + `,
    UNIQUE (id, store_id)
);

CREATE TABLE IF NOT EXISTS colors (
    id         TEXT PRIMARY KEY,
    store_id   TEXT NOT NULL REFERENCES stores(id),
    name       TEXT NOT NULL,
    value      TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT ` + now + `,
    updated_at DATETIME NOT NULL DEFAULT ` + now + `,
    UNIQUE (id, store_id)
);

CREATE TABLE IF NOT EXISTS products (
    id          TEXT PRIMARY KEY,
    store_id    TEXT NOT NULL REFERENCES stores(id),
    category_id TEXT NOT NULL,
    size_id     TEXT NOT NULL,
    color_id    TEXT NOT NULL,
    name        TEXT NOT NULL,
    price       REAL NOT NULL CHECK (price > 0),
    is_featured INTEGER NOT NULL DEFAULT 0,
    is_archived INTEGER NOT NULL DEFAULT 0,
    created_at  DATETIME NOT NULL DEFAULT ` + now + `,
    updated_at  DATETIME NOT NULL DEFAULT ` + now + `,
    FOREIGN KEY (category_id, store_id) REFERENCES categories(id, store_id),
    FOREIGN KEY (size_id, store_id) REFERENCES sizes(id, store_id),
    FOREIGN KEY (color_id, store_id) REFERENCES colors(id, store_id)
);

CREATE INDEX IF NOT EXISTS idx_products_store ON products(store_id, is_archived, created_at);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id, store_id);
CREATE INDEX IF NOT EXISTS idx_products_size ON products(size_id, store_id);
CREATE INDEX IF NOT EXISTS idx_products_color ON products(color_id, store_id);

CREATE TABLE IF NOT EXISTS images (
    id         TEXT PRIMARY KEY,
    product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
    url        TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT ` + now + `,
    updated_at DATETIME NOT NULL DEFAULT ` + now + `
);

CREATE INDEX IF NOT EXISTS idx_images_product ON images(product_id);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS schema_migrations (
    version    INTEGER PRIMARY KEY,
    applied_at DATETIME NOT NULL DEFAULT ` + now + `
);
`
